package cmd

import (
	"github.com/bgraf/trackmix/export"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary SRC...",
	Short: "Print name, date, ascent, distance and link of every track",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().String("format", string(export.SummaryCSV), "Output format: csv, yaml or json")
}

func runSummary(cmd *cobra.Command, args []string) error {
	formatS, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	format, err := export.ParseSummaryFormat(formatS)
	if err != nil {
		return err
	}

	tracks, err := loadTracks(cmd, args)
	if err != nil {
		return err
	}

	return export.WriteSummary(cmd.OutOrStdout(), tracks, format)
}

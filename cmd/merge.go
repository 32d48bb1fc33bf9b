package cmd

import (
	"log"
	"os"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/export"
	"github.com/bgraf/trackmix/render"
	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge SRC...",
	Short: "Merge tracks into a single GPX file",
	RunE:  runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("output", "o", config.DefaultExportFile(), "Output file, - for stdout")
	mergeCmd.Flags().StringSlice("csv", nil, "Strava activity export applied before merging")
	mergeCmd.Flags().BoolP("force", "f", false, "Overwrite existing output without asking")
}

func runMerge(cmd *cobra.Command, args []string) error {
	csvFiles, err := cmd.Flags().GetStringSlice("csv")
	if err != nil {
		return err
	}

	tracks, err := loadTracks(cmd, append(args, csvFiles...))
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	opts := export.GPXOptions{
		Creator:  config.ExportCreator(),
		Author:   config.ExportAuthor(),
		Locale:   monday.Locale(config.Locale()),
		Describe: render.Description,
	}

	if output == "-" {
		return export.WriteGPX(cmd.OutOrStdout(), tracks, opts)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if ok, err := confirmOverwrite(output, force); err != nil || !ok {
		return err
	}

	err = writeFile(output, func(f *os.File) error {
		return export.WriteGPX(f, tracks, opts)
	})
	if err != nil {
		return err
	}

	log.Printf("wrote %d tracks to '%s'", len(tracks), output)

	return nil
}

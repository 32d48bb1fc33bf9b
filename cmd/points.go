package cmd

import (
	"log"
	"os"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/export"
	"github.com/spf13/cobra"
)

var pointsCmd = &cobra.Command{
	Use:   "points SRC...",
	Short: "Write all track points to a Parquet file",
	RunE:  runPoints,
}

func init() {
	rootCmd.AddCommand(pointsCmd)

	pointsCmd.Flags().StringP("output", "o", config.DefaultPointsFile(), "Output file")
	pointsCmd.Flags().BoolP("force", "f", false, "Overwrite existing output without asking")
}

func runPoints(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	tracks, err := loadTracks(cmd, args)
	if err != nil {
		return err
	}

	if ok, err := confirmOverwrite(output, force); err != nil || !ok {
		return err
	}

	err = writeFile(output, func(f *os.File) error {
		return export.WritePoints(f, tracks)
	})
	if err != nil {
		return err
	}

	log.Printf("wrote points of %d tracks to '%s'", len(tracks), output)

	return nil
}

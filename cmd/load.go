package cmd

import (
	"fmt"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/render"
	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load SRC...",
	Short: "Load tracks and list them",
	Long: `Loads GPX, TCX and FIT files (optionally gzipped), directories and URLs
concurrently and prints one line per track. Strava activity exports (.csv)
among the sources are applied to the loaded tracks.`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolP("verbose", "v", false, "Print the description of every track")
}

func runLoad(cmd *cobra.Command, args []string) error {
	tracks, err := loadTracks(cmd, args)
	if err != nil {
		return err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	locale := monday.Locale(config.Locale())
	out := cmd.OutOrStdout()

	for i := range tracks {
		t := &tracks[i]
		fmt.Fprintf(out, "%s\t%.1f km\t%d points\t%s\n", render.ListLabel(t), t.DistanceKm(), len(t.Points), t.Filename)
		if verbose {
			fmt.Fprintf(out, "\t%s\n", render.Tooltip(t, locale))
		}
	}

	return nil
}

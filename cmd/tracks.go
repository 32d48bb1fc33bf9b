package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/data"
	"github.com/bgraf/trackmix/filesystem"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/spf13/cobra"
)

// loadTracks loads all sources given on the command line, applies the
// activity exports among them and the configured date filter. Failed sources
// are logged, they do not abort the command.
func loadTracks(cmd *cobra.Command, args []string) ([]geotrack.Track, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no track files, directories or URLs given")
	}

	filter, err := geotrack.ParseFilter(config.FilterMinDate(), config.FilterMaxDate())
	if err != nil {
		return nil, fmt.Errorf("date filter: %w", err)
	}

	batch, err := data.LoadArgs(cmd.Context(), data.NewDefaultLoader(), args)
	if err != nil {
		return nil, err
	}

	for _, failed := range batch.Failures() {
		log.Printf("skipping '%s': %s", failed.Source, failed.Err)
	}

	if len(batch.Activities) > 0 {
		log.Printf("enriched %d tracks from %d activities", batch.Matched, len(batch.Activities))
	}

	tracks := filter.Apply(batch.Tracks())
	log.Printf("loaded %d tracks from %d sources", len(tracks), len(batch.Results))

	return tracks, nil
}

// confirmOverwrite asks before an existing file is replaced. It returns true
// if the file does not exist yet.
func confirmOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}

	if !filesystem.Exists(path) {
		return true, nil
	}
	if filesystem.IsDirectory(path) {
		return false, fmt.Errorf("output '%s' is a directory", path)
	}

	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Overwrite existing file (%s)", path),
		Default: false,
	}

	var shouldContinue bool
	if err := survey.AskOne(prompt, &shouldContinue, nil); err != nil {
		return false, err
	}

	return shouldContinue, nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(f *os.File) error) error {
	if err := filesystem.CreateParentDirectory(path); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

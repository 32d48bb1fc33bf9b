package data

import (
	"context"
	"fmt"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/filesystem"
	"github.com/bgraf/trackmix/geotrack"
)

// Batch is the outcome of loading command line arguments.
type Batch struct {
	Results    []Result
	Activities []strava.Activity
	Matched    int
}

// Tracks returns the tracks of all successful results.
func (b *Batch) Tracks() []geotrack.Track {
	return Tracks(b.Results)
}

// Failures returns the results that could not be loaded.
func (b *Batch) Failures() []Result {
	var failed []Result
	for _, r := range b.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// LoadArgs expands files, directories and URLs, loads all tracks concurrently
// and applies every activity export found among args to the loaded tracks.
func LoadArgs(ctx context.Context, loader *Loader, args []string) (*Batch, error) {
	sources, err := filesystem.GatherSources(args, config.TrackExtensions(), config.CSVExtensions())
	if err != nil {
		return nil, fmt.Errorf("gather sources: %w", err)
	}

	batch := &Batch{
		Results: loader.LoadAll(ctx, sources.Tracks),
	}

	for _, p := range sources.Activities {
		activities, err := LoadActivities(p)
		if err != nil {
			return nil, err
		}
		batch.Activities = append(batch.Activities, activities...)
	}

	if len(batch.Activities) > 0 {
		batch.enrich()
	}

	return batch, nil
}

func (b *Batch) enrich() {
	for i := range b.Results {
		if b.Results[i].Err != nil {
			continue
		}

		var matched int
		b.Results[i].Tracks, matched = strava.Enrich(b.Results[i].Tracks, b.Activities)
		b.Matched += matched
	}
}

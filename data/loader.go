package data

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/geotrack"
)

// Result is the outcome of loading a single source.
type Result struct {
	Source string
	Tracks []geotrack.Track
	Err    error
}

// Loader loads many sources concurrently. A failing source does not affect
// the others.
type Loader struct {
	Client  *http.Client
	Workers int

	// MaxBodySize limits downloads in bytes. Zero uses the default.
	MaxBodySize int64
}

func NewDefaultLoader() *Loader {
	return &Loader{
		Client:      &http.Client{Timeout: config.HTTPTimeout()},
		Workers:     config.LoadWorkers(),
		MaxBodySize: config.HTTPMaxBodySize(),
	}
}

// LoadAll loads every source and returns the results in input order. Sources
// starting with http:// or https:// are downloaded, all others are read from
// disk.
func (l *Loader) LoadAll(ctx context.Context, sources []string) []Result {
	results := make([]Result, len(sources))

	workers := l.Workers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	indices := make(chan int)

	for range workers {
		wg.Add(1)

		go func(indices <-chan int) {
			defer wg.Done()

			for i := range indices {
				results[i] = l.load(ctx, sources[i])
			}
		}(indices)
	}

	for i := range sources {
		indices <- i
	}

	close(indices)
	wg.Wait()

	return results
}

func (l *Loader) load(ctx context.Context, source string) Result {
	result := Result{Source: source}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if IsURL(source) {
		result.Tracks, result.Err = LoadURL(ctx, l.Client, source, l.MaxBodySize)
	} else {
		result.Tracks, result.Err = LoadFile(source)
	}

	if result.Err != nil {
		log.Printf("could not load '%s': %s", source, result.Err)
	}

	return result
}

// Tracks concatenates the tracks of all successful results.
func Tracks(results []Result) []geotrack.Track {
	var tracks []geotrack.Track
	for _, r := range results {
		if r.Err == nil {
			tracks = append(tracks, r.Tracks...)
		}
	}
	return tracks
}

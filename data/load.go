// Package data loads track files from disk and over HTTP and keeps the
// loaded tracks in memory.
package data

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/data/fit"
	"github.com/bgraf/trackmix/data/gpx"
	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/data/tcx"
	"github.com/bgraf/trackmix/data/xmltree"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/klauspost/compress/gzip"
)

type Format string

const (
	FormatGPX Format = "gpx"
	FormatTCX Format = "tcx"
	FormatFIT Format = "fit"
)

// SplitSourceName returns the format extension of name and whether the name
// carries a gzip suffix. The extension is lower case and includes the dot.
func SplitSourceName(name string) (ext string, gzipped bool) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, config.GzipExtension()) {
		gzipped = true
		lower = strings.TrimSuffix(lower, config.GzipExtension())
	}

	return path.Ext(lower), gzipped
}

// DetectFormat maps a file name to a track format without reading any data.
func DetectFormat(name string) (Format, bool, error) {
	ext, gzipped := SplitSourceName(name)

	switch ext {
	case ".gpx":
		return FormatGPX, gzipped, nil
	case ".tcx":
		return FormatTCX, gzipped, nil
	case ".fit":
		return FormatFIT, gzipped, nil
	}

	return "", gzipped, &geotrack.UnsupportedFormatError{Extension: ext}
}

// Decode decodes the tracks in r. The format is derived from name. Every
// yielded track has its Filename set to name's base.
func Decode(r io.Reader, name string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		format, gzipped, err := DetectFormat(name)
		if err != nil {
			yield(geotrack.Track{}, err)
			return
		}

		if gzipped {
			zr, err := gzip.NewReader(r)
			if err != nil {
				yield(geotrack.Track{}, &geotrack.ParseError{Format: "gzip", Source: name, Err: err})
				return
			}
			defer zr.Close()
			r = zr
		}

		var seq iter.Seq2[geotrack.Track, error]
		switch format {
		case FormatFIT:
			seq = fit.Decode(r, name)
		default:
			seq = decodeXML(r, name, format)
		}

		filename := path.Base(name)
		for track, err := range seq {
			if err == nil {
				track.Filename = filename
			}
			if !yield(track, err) {
				return
			}
		}
	}
}

// decodeXML selects the decoder by the root element. A mislabeled .tcx file
// holding GPX data still decodes.
func decodeXML(r io.Reader, name string, format Format) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		sc := xmltree.NewScanner(r)
		root, err := sc.Root()
		if err != nil {
			yield(geotrack.Track{}, &geotrack.ParseError{Format: string(format), Source: name, Err: err})
			return
		}

		switch root {
		case "gpx":
			gpx.DecodeScanner(sc, name)(yield)
		case "TrainingCenterDatabase":
			tcx.DecodeScanner(sc, name)(yield)
		default:
			yield(geotrack.Track{}, &geotrack.FormatError{
				Format: string(format),
				Source: name,
				Reason: fmt.Sprintf("unknown root element <%s>", root),
			})
		}
	}
}

// LoadFile decodes all tracks of the file at filePath.
func LoadFile(filePath string) ([]geotrack.Track, error) {
	if _, _, err := DetectFormat(filePath); err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open track file: %w", err)
	}
	defer f.Close()

	return geotrack.Collect(Decode(bufio.NewReader(f), filepath.Base(filePath)))
}

// LoadURL downloads rawURL and decodes its tracks. The format is derived from
// the last element of the URL path. Filename of every track is set to the URL.
// Bodies larger than maxBytes are rejected; maxBytes <= 0 uses the default.
func LoadURL(ctx context.Context, client *http.Client, rawURL string, maxBytes int64) ([]geotrack.Track, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	name := path.Base(u.Path)
	if _, _, err := DetectFormat(name); err != nil {
		return nil, err
	}

	body, err := fetch(ctx, client, rawURL, maxBytes)
	if err != nil {
		return nil, err
	}

	tracks, err := geotrack.Collect(Decode(bytes.NewReader(body), name))
	if err != nil {
		return nil, err
	}

	for i := range tracks {
		tracks[i].Filename = rawURL
	}

	return tracks, nil
}

// ErrBodyTooLarge is returned for downloads exceeding the size limit.
var ErrBodyTooLarge = errors.New("response body too large")

func fetch(ctx context.Context, client *http.Client, rawURL string, maxBytes int64) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxBodySize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch '%s' failed: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("fetch '%s': %w (limit %d bytes)", rawURL, ErrBodyTooLarge, maxBytes)
	}

	return body, nil
}

// LoadActivities reads a Strava activity export with the configured columns.
func LoadActivities(filePath string) ([]strava.Activity, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open activities file: %w", err)
	}
	defer f.Close()

	activities, err := strava.ReadActivities(f, config.StravaColumns())
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", filePath, err)
	}

	log.Printf("read %d activities from '%s'", len(activities), filePath)

	return activities, nil
}

func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

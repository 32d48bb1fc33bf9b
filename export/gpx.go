// Package export writes loaded tracks to GPX, summary tables and Parquet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/goodsign/monday"
	"github.com/tkrajina/gpxgo/gpx"
)

const (
	GPXContentType = "application/gpx+xml"
	GPXVersion     = "1.1"
	DefaultGPXName = "all.gpx"
)

// GPXOptions configures the merged document.
type GPXOptions struct {
	Creator string
	Author  string
	Locale  monday.Locale

	// Describe builds the <desc> of a track. An empty result omits the element.
	Describe func(t *geotrack.Track, locale monday.Locale) string
}

// BuildGPX merges tracks into one GPX document with one <trk> per track.
// Elevations are not written. Point times are written in UTC.
func BuildGPX(tracks []geotrack.Track, opts GPXOptions) *gpx.GPX {
	names := make([]string, len(tracks))
	for i := range tracks {
		names[i] = tracks[i].Name
	}

	doc := &gpx.GPX{
		Version:     GPXVersion,
		Creator:     opts.Creator,
		Name:        fmt.Sprintf("Merged %d tracks", len(tracks)),
		Description: "Merged tracks: " + strings.Join(names, ", "),
		AuthorName:  opts.Author,
		Tracks:      make([]gpx.GPXTrack, 0, len(tracks)),
	}

	for i := range tracks {
		doc.Tracks = append(doc.Tracks, buildTrack(&tracks[i], opts))
	}

	return doc
}

func buildTrack(t *geotrack.Track, opts GPXOptions) gpx.GPXTrack {
	trk := gpx.GPXTrack{
		Name:   t.Name,
		Source: t.Filename,
	}

	if opts.Describe != nil {
		trk.Description = opts.Describe(t, opts.Locale)
	}

	seg := gpx.GPXTrackSegment{
		Points: make([]gpx.GPXPoint, 0, len(t.Points)),
	}

	for _, p := range t.Points {
		pt := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Lat,
				Longitude: p.Lon,
			},
		}
		if p.Time.IsSome() {
			pt.Timestamp = p.Time.Get().UTC()
		}
		seg.Points = append(seg.Points, pt)
	}

	trk.Segments = []gpx.GPXTrackSegment{seg}

	return trk
}

// WriteGPX serializes the merged document of tracks to w.
func WriteGPX(w io.Writer, tracks []geotrack.Track, opts GPXOptions) error {
	data, err := BuildGPX(tracks, opts).ToXml(gpx.ToXmlParams{Version: GPXVersion, Indent: true})
	if err != nil {
		return fmt.Errorf("could not serialize gpx: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write gpx: %w", err)
	}

	return nil
}

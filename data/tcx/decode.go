// Package tcx decodes Garmin Training Center documents. Every lap of every
// activity becomes its own geotrack.Track.
package tcx

import (
	"encoding/xml"
	"io"
	"iter"
	"log"
	"strconv"
	"time"

	"github.com/bgraf/trackmix/data/xmltree"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/bgraf/trackmix/option"
)

const (
	formatName = "tcx"
	rootName   = "TrainingCenterDatabase"
)

// TimeLocation is used for Time values without zone designator. TCX timestamps
// are interpreted in local time whereas GPX timestamps default to UTC.
var TimeLocation = time.Local

func Decode(r io.Reader, source string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		sc := xmltree.NewScanner(r)
		root, err := sc.Root()
		if err != nil {
			yield(geotrack.Track{}, &geotrack.ParseError{Format: formatName, Source: source, Err: err})
			return
		}

		if root != rootName {
			yield(geotrack.Track{}, &geotrack.FormatError{
				Format: formatName,
				Source: source,
				Reason: "root element is <" + root + ">",
			})
			return
		}

		DecodeScanner(sc, source)(yield)
	}
}

// DecodeScanner continues decoding a scanner positioned at a
// <TrainingCenterDatabase> root. Only the first <Activities> container is read.
func DecodeScanner(sc *xmltree.Scanner, source string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		activities := 0

		match := func(p []string, start xml.StartElement) bool {
			if len(p) == 1 && start.Name.Local == "Activities" {
				activities++
				return false
			}

			return activities == 1 &&
				len(p) == 3 &&
				p[1] == "Activities" &&
				p[2] == "Activity" &&
				start.Name.Local == "Lap"
		}

		name := geotrack.NameFromSource(source)

		for {
			lap, err := sc.Next(match)
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(geotrack.Track{}, &geotrack.ParseError{Format: formatName, Source: source, Err: err})
				return
			}

			if !yield(decodeLap(lap, name), nil) {
				return
			}
		}

		if activities == 0 {
			log.Printf("tcx: '%s' has no activities: %v", source, sc.RootAttrs())
			yield(geotrack.Track{}, &geotrack.FormatError{
				Format: formatName,
				Source: source,
				Reason: "no activities",
			})
		}
	}
}

func decodeLap(lap *xmltree.Node, name string) geotrack.Track {
	track := geotrack.Track{Name: name}
	geotrack.ApplyNameFallback(&track)

	for _, trkpt := range lap.Child("Track").All("Trackpoint") {
		pos := trkpt.Child("Position")
		if pos == nil {
			continue
		}

		pointTime := option.None[time.Time]()
		if ts, ok := trkpt.ChildText("Time"); ok {
			if t, ok := geotrack.ParseTime(ts, TimeLocation); ok {
				pointTime = option.Some(t)
				track.Timestamp = pointTime
			}
		}

		p, ok := decodePosition(pos)
		if !ok {
			continue
		}

		p.Time = pointTime
		if ele, ok := trkpt.ChildText("ElevationMeters"); ok {
			if v, err := strconv.ParseFloat(ele, 64); err == nil {
				p.Elevation = option.Some(v)
			}
		}

		track.Points = append(track.Points, p)
	}

	return track
}

func decodePosition(pos *xmltree.Node) (p geotrack.Point, ok bool) {
	lat, okLat := pos.ChildText("LatitudeDegrees")
	lon, okLon := pos.ChildText("LongitudeDegrees")
	if !okLat || !okLon {
		return
	}

	var err error
	if p.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return
	}
	if p.Lon, err = strconv.ParseFloat(lon, 64); err != nil {
		return
	}

	return p, true
}

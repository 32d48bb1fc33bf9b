// Package fit extracts the positioned records of FIT activity files. The binary
// structure itself is decoded by github.com/tormoder/fit.
package fit

import (
	"io"
	"iter"
	"log"
	"math"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/bgraf/trackmix/option"
	fitsdk "github.com/tormoder/fit"
)

const formatName = "fit"

// Decode reads a FIT activity and yields a single track made of all records
// carrying a position. FIT files are never segmented.
func Decode(r io.Reader, source string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		file, err := fitsdk.Decode(r)
		if err != nil {
			yield(geotrack.Track{}, &geotrack.ParseError{Format: formatName, Source: source, Err: err})
			return
		}

		activity, err := file.Activity()
		if err != nil {
			log.Printf("fit: '%s' is not an activity: %s", source, err)
			yield(geotrack.Track{}, &geotrack.FormatError{Format: formatName, Source: source, Reason: err.Error()})
			return
		}

		if len(activity.Records) == 0 {
			log.Printf("fit: '%s' has no records: %d sessions, %d laps", source, len(activity.Sessions), len(activity.Laps))
			yield(geotrack.Track{}, &geotrack.FormatError{Format: formatName, Source: source, Reason: "no records"})
			return
		}

		yield(decodeRecords(activity.Records, geotrack.NameFromSource(source)), nil)
	}
}

func decodeRecords(records []*fitsdk.RecordMsg, name string) geotrack.Track {
	track := geotrack.Track{Name: name}
	geotrack.ApplyNameFallback(&track)

	for _, rec := range records {
		if rec == nil || rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}

		p := geotrack.Point{
			Lat: rec.PositionLat.Degrees(),
			Lon: rec.PositionLong.Degrees(),
		}

		if ele := altitude(rec); !math.IsNaN(ele) {
			p.Elevation = option.Some(ele)
		}

		if !rec.Timestamp.IsZero() && !fitsdk.IsBaseTime(rec.Timestamp) {
			p.Time = option.Some(rec.Timestamp.UTC())
		}

		track.Points = append(track.Points, p)
	}

	geotrack.Normalize(&track)

	return track
}

// altitude prefers the enhanced altitude field written by newer devices.
func altitude(rec *fitsdk.RecordMsg) float64 {
	if ele := rec.GetEnhancedAltitudeScaled(); !math.IsNaN(ele) {
		return ele
	}
	return rec.GetAltitudeScaled()
}

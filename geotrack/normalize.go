package geotrack

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/bgraf/trackmix/option"
)

var datedNamePattern = regexp.MustCompile(`(?i)(\d+)_(\d+)_(\d+)_(.*)`)

// ApplyNameFallback recognizes names like "2021_06_15_Morning Ride" and splits them
// into the display date "15.06.2021" and the name "Morning Ride". Other names are
// left untouched.
func ApplyNameFallback(t *Track) {
	groups := datedNamePattern.FindStringSubmatch(t.Name)
	if groups == nil {
		return
	}

	t.Date = fmt.Sprintf("%s.%s.%s", groups[3], groups[2], groups[1])
	t.Name = groups[4]
}

// Normalize computes the derived metrics of a decoded track: elevation gain,
// start and end time, duration and the last timestamp.
func Normalize(t *Track) {
	t.TotalElevationGain = ElevationGain(t.Points)
	t.StartTime, t.EndTime = TimeSpan(t.Points)

	t.TotalDuration = 0
	if t.StartTime.IsSome() && t.EndTime.IsSome() {
		t.TotalDuration = t.EndTime.Get().Sub(t.StartTime.Get()).Seconds()
	}

	if t.EndTime.IsSome() {
		t.Timestamp = t.EndTime
	}
}

// ElevationGain sums the positive deltas between consecutive points that carry an
// elevation. Points without elevation are skipped and leave the previous sample as
// the reference.
func ElevationGain(points []Point) float64 {
	gain := 0.0
	anchor := option.None[float64]()

	for _, p := range points {
		if p.Elevation.IsNone() {
			continue
		}

		ele := p.Elevation.Get()
		if anchor.IsSome() && ele > anchor.Get() {
			gain += ele - anchor.Get()
		}
		anchor = p.Elevation
	}

	return gain
}

// TimeSpan returns the timestamps of the first and the last point carrying one.
// Points are not reordered.
func TimeSpan(points []Point) (start, end option.Option[time.Time]) {
	for _, p := range points {
		if p.Time.IsNone() {
			continue
		}
		if start.IsNone() {
			start = p.Time
		}
		end = p.Time
	}

	return
}

// NameFromSource derives a track name from a file name by dropping the
// directory, a gzip suffix and the format extension.
func NameFromSource(source string) string {
	base := path.Base(source)
	if strings.EqualFold(path.Ext(base), ".gz") {
		base = base[:len(base)-len(".gz")]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

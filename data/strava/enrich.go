package strava

import (
	"strings"

	"github.com/bgraf/trackmix/geotrack"
)

const nameSeparator = " + "

// Match returns the activities whose file name contains the track's filename or
// its GPX <src>. Empty keys never match.
func Match(track *geotrack.Track, activities []Activity) []Activity {
	var matches []Activity
	for _, a := range activities {
		if containsKey(a.FileName, track.Filename) || containsKey(a.FileName, track.Src) {
			matches = append(matches, a)
		}
	}
	return matches
}

func containsKey(fileName, key string) bool {
	return key != "" && strings.Contains(fileName, key)
}

// Apply returns a copy of track with name, type, equipment and duration taken
// from matches. Several matches are concatenated, not rejected. Points are shared
// with the input track.
func Apply(track geotrack.Track, matches []Activity) geotrack.Track {
	if len(matches) == 0 {
		return track
	}

	names := make([]string, 0, len(matches))
	total := 0.0
	for _, m := range matches {
		names = append(names, m.Name)
		total += m.Duration
	}

	track.Name = strings.Join(names, nameSeparator)
	track.Equipment = matches[0].Equipment
	track.Type = matches[0].Type
	track.TotalDuration = total

	return track
}

// Enrich applies the activity export to every track and returns the updated
// tracks in input order together with the number of tracks that matched.
// Tracks without a match are returned unchanged.
func Enrich(tracks []geotrack.Track, activities []Activity) ([]geotrack.Track, int) {
	enriched := make([]geotrack.Track, len(tracks))
	matched := 0

	for i := range tracks {
		matches := Match(&tracks[i], activities)
		if len(matches) > 0 {
			matched++
		}
		enriched[i] = Apply(tracks[i], matches)
	}

	return enriched, matched
}

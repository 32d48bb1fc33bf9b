package geotrack

import "iter"

// Collect drains a track sequence. It stops at the first error and returns the
// tracks decoded so far together with it.
func Collect(seq iter.Seq2[Track, error]) ([]Track, error) {
	var tracks []Track
	for t, err := range seq {
		if err != nil {
			return tracks, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

package data

import (
	"slices"
	"sync"

	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/google/uuid"
)

// Store keeps loaded tracks in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tracks []geotrack.Track
}

func NewStore() *Store {
	return &Store{}
}

// Add assigns a fresh ID to every track and appends them. The stored copies
// are returned.
func (s *Store) Add(tracks ...geotrack.Track) []geotrack.Track {
	added := make([]geotrack.Track, len(tracks))
	for i, t := range tracks {
		t.ID = uuid.New()
		added[i] = t
	}

	s.mu.Lock()
	s.tracks = append(s.tracks, added...)
	s.mu.Unlock()

	return added
}

// Tracks returns a snapshot of all tracks in insertion order.
func (s *Store) Tracks() []geotrack.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tracks)
}

// TracksByDate returns a snapshot ordered by Timestamp, newest first. Tracks
// without timestamp are placed last.
func (s *Store) TracksByDate() []geotrack.Track {
	tracks := s.Tracks()

	slices.SortStableFunc(tracks, func(a, b geotrack.Track) int {
		switch {
		case a.Timestamp.IsNone() && b.Timestamp.IsNone():
			return 0
		case a.Timestamp.IsNone():
			return 1
		case b.Timestamp.IsNone():
			return -1
		}

		return b.Timestamp.Get().Compare(a.Timestamp.Get())
	})

	return tracks
}

func (s *Store) TrackByGUID(guid uuid.UUID) (geotrack.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tracks {
		if t.ID == guid {
			return t, true
		}
	}

	return geotrack.Track{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tracks)
}

// Enrich replaces the stored tracks with their enriched versions and returns
// the number of tracks that matched at least one activity.
func (s *Store) Enrich(activities []strava.Activity) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched int
	s.tracks, matched = strava.Enrich(s.tracks, activities)

	return matched
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.tracks = nil
	s.mu.Unlock()
}

package geotrack

import (
	"encoding/json"
	"time"

	"github.com/bgraf/trackmix/option"
	"github.com/google/uuid"
)

// DefaultName is used for tracks and routes without a name element.
const DefaultName = "untitled"

type Point struct {
	Lat, Lon  float64
	Elevation option.Option[float64]
	Time      option.Option[time.Time]
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{p.Lat, p.Lon})
}

// Track is one continuous recorded path. A single source file may yield several
// tracks, one per GPX segment, TCX lap or GPX route.
type Track struct {
	ID       uuid.UUID
	Name     string
	Points   []Point
	Filename string
	Src      string

	Description string
	Date        string // DD.MM.YYYY, display only

	// Timestamp is the last timestamp seen while decoding.
	Timestamp option.Option[time.Time]
	StartTime option.Option[time.Time]
	EndTime   option.Option[time.Time]

	TotalDuration      float64 // seconds
	TotalElevationGain float64 // meters

	ExternalURL string
	ImageURL    string

	Type      string
	Equipment string
}

// FirstTime returns the timestamp of the first point, if it has one.
func (t *Track) FirstTime() option.Option[time.Time] {
	if len(t.Points) == 0 {
		return option.None[time.Time]()
	}
	return t.Points[0].Time
}

func (t *Track) HasPoints() bool {
	return len(t.Points) > 0
}

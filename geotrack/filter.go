package geotrack

import (
	"fmt"
	"time"

	"github.com/bgraf/trackmix/option"
)

const filterDateLayout = "2006-01-02"

// Filter hides tracks whose last timestamp lies outside [MinDate, MaxDate].
// Both bounds are whole days; tracks without timestamp are always visible.
type Filter struct {
	MinDate option.Option[time.Time]
	MaxDate option.Option[time.Time]
}

// ParseFilter builds a filter from YYYY-MM-DD strings. Empty strings leave the
// bound open.
func ParseFilter(minDate, maxDate string) (f Filter, err error) {
	parse := func(s string) (option.Option[time.Time], error) {
		if s == "" {
			return option.None[time.Time](), nil
		}
		d, err := time.ParseInLocation(filterDateLayout, s, time.Local)
		if err != nil {
			return option.None[time.Time](), fmt.Errorf("parsing date '%s': %w", s, err)
		}
		return option.Some(d), nil
	}

	if f.MinDate, err = parse(minDate); err != nil {
		return
	}
	f.MaxDate, err = parse(maxDate)
	return
}

func (f Filter) Visible(t *Track) bool {
	if t.Timestamp.IsNone() {
		return true
	}

	ts := t.Timestamp.Get()
	if f.MinDate.IsSome() && ts.Before(f.MinDate.Get()) {
		return false
	}
	if f.MaxDate.IsSome() && !ts.Before(f.MaxDate.Get().AddDate(0, 0, 1)) {
		return false
	}

	return true
}

// Apply returns the visible tracks in their original order.
func (f Filter) Apply(tracks []Track) []Track {
	var visible []Track
	for i := range tracks {
		if f.Visible(&tracks[i]) {
			visible = append(visible, tracks[i])
		}
	}
	return visible
}

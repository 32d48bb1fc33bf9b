package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bgraf/trackmix/geotrack"
	"gopkg.in/yaml.v2"
)

type SummaryFormat string

const (
	SummaryCSV  SummaryFormat = "csv"
	SummaryYAML SummaryFormat = "yaml"
	SummaryJSON SummaryFormat = "json"
)

// SummaryRow is one line of the track overview.
type SummaryRow struct {
	Name       string  `json:"name" yaml:"name"`
	Date       string  `json:"date" yaml:"date"`
	Elevation  float64 `json:"elev" yaml:"elev"`
	DistanceKm float64 `json:"distance" yaml:"distance"`
	URL        string  `json:"url" yaml:"url"`
}

func Summarize(tracks []geotrack.Track) []SummaryRow {
	rows := make([]SummaryRow, len(tracks))
	for i := range tracks {
		t := &tracks[i]
		rows[i] = SummaryRow{
			Name:       t.Name,
			Date:       t.Date,
			Elevation:  t.TotalElevationGain,
			DistanceKm: t.DistanceKm(),
			URL:        t.ExternalURL,
		}
	}
	return rows
}

func ParseSummaryFormat(s string) (SummaryFormat, error) {
	switch f := SummaryFormat(s); f {
	case SummaryCSV, SummaryYAML, SummaryJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown summary format '%s'", s)
}

// WriteSummary writes one row per track. CSV output is semicolon separated
// with a header line.
func WriteSummary(w io.Writer, tracks []geotrack.Track, format SummaryFormat) error {
	rows := Summarize(tracks)

	switch format {
	case SummaryCSV:
		return writeSummaryCSV(w, rows)
	case SummaryYAML:
		return yaml.NewEncoder(w).Encode(rows)
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	return fmt.Errorf("unknown summary format '%s'", format)
}

func writeSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"name", "date", "elev", "distance", "url"}); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Name,
			r.Date,
			strconv.FormatFloat(r.Elevation, 'f', -1, 64),
			strconv.FormatFloat(r.DistanceKm, 'f', 1, 64),
			r.URL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	gpxdecode "github.com/bgraf/trackmix/data/gpx"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/bgraf/trackmix/option"
	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkrajina/gpxgo/gpx"
	"gopkg.in/yaml.v2"
)

func sampleTracks() []geotrack.Track {
	t0 := time.Date(2022, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	return []geotrack.Track{
		{
			Name:               "Tom & Jerry <run>",
			Filename:           "a-Run.gpx",
			Type:               "Run",
			TotalDuration:      3600,
			TotalElevationGain: 12.5,
			ExternalURL:        "https://example.org/1",
			Points: []geotrack.Point{
				{Lat: 50, Lon: 8, Elevation: option.Some(100.0), Time: option.Some(t0)},
				{Lat: 50.01, Lon: 8.01, Elevation: option.Some(112.5), Time: option.Some(t0.Add(time.Minute))},
			},
		},
		{
			Name:     "Second",
			Filename: "b.tcx",
			Date:     "01.05.2022",
			Points: []geotrack.Point{
				{Lat: 51, Lon: 9, Time: option.Some(t0)},
			},
		},
	}
}

func describe(t *geotrack.Track, _ monday.Locale) string {
	if t.Type == "" {
		return ""
	}
	return "<br>" + t.Type
}

func TestWriteGPXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGPX(&buf, sampleTracks(), GPXOptions{Creator: "test", Author: "me", Describe: describe})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Tom &amp; Jerry &lt;run&gt;")
	assert.NotContains(t, buf.String(), "<ele>")

	tracks, err := geotrack.Collect(gpxdecode.Decode(bytes.NewReader(buf.Bytes()), "all.gpx"))
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	first := tracks[0]
	assert.Equal(t, "Tom & Jerry <run>", first.Name)
	assert.Equal(t, "a-Run.gpx", first.Src)
	assert.Equal(t, "<br>Run", first.Description)
	require.Len(t, first.Points, 2)
	assert.InDelta(t, 50.01, first.Points[1].Lat, 1e-9)
	assert.InDelta(t, 8.01, first.Points[1].Lon, 1e-9)
	assert.True(t, first.Points[0].Elevation.IsNone())
	assert.Equal(t, time.Date(2022, 5, 1, 8, 0, 0, 0, time.UTC), first.Points[0].Time.Get())
	assert.Zero(t, first.TotalElevationGain)

	assert.Equal(t, "b.tcx", tracks[1].Src)
	assert.Empty(t, tracks[1].Description)
}

func TestBuildGPXMetadata(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGPX(&buf, sampleTracks(), GPXOptions{Author: "me"}))

	parsed, err := gpx.ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Merged 2 tracks", parsed.Name)
	assert.Equal(t, "Merged tracks: Tom & Jerry <run>, Second", parsed.Description)
	assert.Equal(t, "me", parsed.AuthorName)
	require.Len(t, parsed.Tracks, 2)
	assert.Len(t, parsed.Tracks[0].Segments, 1)
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleTracks(), SummaryCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name;date;elev;distance;url", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Tom & Jerry <run>;;12.5;1.3;"))
	assert.Equal(t, "Second;01.05.2022;0;0.0;", lines[2])
}

func TestWriteSummaryStructured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleTracks(), SummaryJSON))

	var rows []SummaryRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "https://example.org/1", rows[0].URL)

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, sampleTracks(), SummaryYAML))
	rows = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, "01.05.2022", rows[1].Date)

	_, err := ParseSummaryFormat("xml")
	assert.Error(t, err)
}

func TestPointRows(t *testing.T) {
	rows := PointRows(sampleTracks())
	require.Len(t, rows, 3)

	assert.Equal(t, int32(0), rows[0].Track)
	assert.Equal(t, 100.0, rows[0].Elevation)
	assert.Equal(t, "2022-05-01T08:00:00Z", rows[0].Time)

	assert.Equal(t, int32(1), rows[2].Track)
	assert.True(t, math.IsNaN(rows[2].Elevation))
}

func TestWritePoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, sampleTracks()))

	data := buf.Bytes()
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}

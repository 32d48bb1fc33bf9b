package gpx

import (
	"strings"
	"testing"
	"time"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSegments = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <metadata><name>not a track name</name></metadata>
  <trk>
    <name>2021_06_15_Morning Ride</name>
    <src>ride1.gpx</src>
    <desc>along the river</desc>
    <link href="https://example.org/track/1"><type>trackOnWeb</type></link>
    <link href="https://example.org/chart/1.png"><type>elevationChartUrlTab</type></link>
    <trkseg>
      <trkpt lat="52.50" lon="13.40"><ele>100</ele><time>2021-06-15T06:00:00Z</time></trkpt>
      <trkpt lat="52.51" lon="13.41"><ele>105.5</ele><time>2021-06-15T06:01:00Z</time></trkpt>
      <trkpt lon="13.42"><ele>900</ele><time>2021-06-15T06:02:00Z</time></trkpt>
      <trkpt lat="52.52" lon="13.43"><ele>120</ele><time>2021-06-15T06:03:00Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="52.60" lon="13.50"><ele>abc</ele></trkpt>
      <trkpt lat="52.61" lon="13.51"/>
    </trkseg>
  </trk>
</gpx>`

func decodeString(t *testing.T, doc string) []geotrack.Track {
	t.Helper()

	tracks, err := geotrack.Collect(Decode(strings.NewReader(doc), "test.gpx"))
	require.NoError(t, err)
	return tracks
}

func TestDecodeSegments(t *testing.T) {
	tracks := decodeString(t, twoSegments)
	require.Len(t, tracks, 2)

	first := tracks[0]
	assert.Equal(t, "Morning Ride", first.Name)
	assert.Equal(t, "15.06.2021", first.Date)
	assert.Equal(t, "ride1.gpx", first.Src)
	assert.Equal(t, "along the river", first.Description)
	assert.Equal(t, "https://example.org/track/1", first.ExternalURL)
	assert.Equal(t, "https://example.org/chart/1.png", first.ImageURL)

	require.Len(t, first.Points, 3, "point without lat is dropped")
	assert.InDelta(t, 20.0, first.TotalElevationGain, 1e-9)
	assert.Equal(t, time.Date(2021, 6, 15, 6, 0, 0, 0, time.UTC), first.StartTime.Get())
	assert.Equal(t, time.Date(2021, 6, 15, 6, 3, 0, 0, time.UTC), first.EndTime.Get())
	assert.InDelta(t, 180.0, first.TotalDuration, 1e-9)

	second := tracks[1]
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.ExternalURL, second.ExternalURL)
	require.Len(t, second.Points, 2)
	assert.True(t, second.Points[0].Elevation.IsNone())
	assert.Zero(t, second.Points[0].Elevation.GetOr(0))
	assert.True(t, second.StartTime.IsNone())
	assert.Zero(t, second.TotalElevationGain)
}

func TestDecodeIncreasingElevation(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<gpx><trk><trkseg>`)
	for i, ele := range []string{"12", "14", "19", "40", "41.5"} {
		b.WriteString(`<trkpt lat="1.` + string(rune('0'+i)) + `" lon="2"><ele>` + ele + `</ele></trkpt>`)
	}
	b.WriteString(`</trkseg></trk></gpx>`)

	tracks := decodeString(t, b.String())
	require.Len(t, tracks, 1)
	assert.InDelta(t, 41.5-12, tracks[0].TotalElevationGain, 1e-9)
	assert.Equal(t, geotrack.DefaultName, tracks[0].Name)
}

func TestDecodeRoute(t *testing.T) {
	doc := `<gpx>
  <rte>
    <name>Planned</name>
    <rtept lat="1" lon="2"><ele>500</ele><time>2021-06-15T06:00:00Z</time></rtept>
    <rtept lat="1.1" lon="2.1"><ele>600</ele></rtept>
    <rtept lat="x" lon="2.2"/>
  </rte>
  <rte><rtept lat="3" lon="4"/></rte>
</gpx>`

	tracks := decodeString(t, doc)
	require.Len(t, tracks, 2)

	route := tracks[0]
	assert.Equal(t, "Planned", route.Name)
	require.Len(t, route.Points, 2)
	assert.True(t, route.Points[0].Elevation.IsNone())
	assert.True(t, route.Points[0].Time.IsNone())
	assert.Zero(t, route.TotalElevationGain)
	assert.Equal(t, time.Date(2021, 6, 15, 6, 0, 0, 0, time.UTC), route.Timestamp.Get())

	assert.Equal(t, geotrack.DefaultName, tracks[1].Name)
}

func TestDecodeWithoutTracks(t *testing.T) {
	_, err := geotrack.Collect(Decode(strings.NewReader(`<gpx><wpt lat="1" lon="2"/></gpx>`), "empty.gpx"))

	var formatErr *geotrack.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "empty.gpx", formatErr.Source)
}

func TestDecodeWrongRoot(t *testing.T) {
	_, err := geotrack.Collect(Decode(strings.NewReader(`<kml></kml>`), "x.gpx"))

	var formatErr *geotrack.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := geotrack.Collect(Decode(strings.NewReader(`<gpx><trk><trkseg><trkpt lat="1" lon="2"></trk></gpx>`), "bad.gpx"))

	var parseErr *geotrack.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestDecodeStopsEarly(t *testing.T) {
	count := 0
	for _, err := range Decode(strings.NewReader(twoSegments), "test.gpx") {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)
}

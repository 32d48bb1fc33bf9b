package fit

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fitsdk "github.com/tormoder/fit"
)

type sample struct {
	lat, lon float64
	ele      float64
	offset   time.Duration
	noPos    bool
}

func buildActivity(t *testing.T, start time.Time, samples []sample) []byte {
	t.Helper()

	header := fitsdk.NewHeader(fitsdk.V20, true)
	file, err := fitsdk.NewFile(fitsdk.FileTypeActivity, header)
	require.NoError(t, err)

	activity, err := file.Activity()
	require.NoError(t, err)

	for _, s := range samples {
		record := fitsdk.NewRecordMsg()
		record.Timestamp = start.Add(s.offset)
		if !s.noPos {
			record.PositionLat = fitsdk.NewLatitudeDegrees(s.lat)
			record.PositionLong = fitsdk.NewLongitudeDegrees(s.lon)
		}
		record.Altitude = uint16((s.ele + 500) * 5)
		activity.Records = append(activity.Records, record)
	}

	var buf bytes.Buffer
	require.NoError(t, fitsdk.Encode(&buf, file, binary.LittleEndian))
	return buf.Bytes()
}

func TestDecodeActivity(t *testing.T) {
	start := time.Date(2021, 6, 15, 6, 0, 0, 0, time.UTC)
	data := buildActivity(t, start, []sample{
		{lat: 52.5, lon: 13.4, ele: 30, offset: 0},
		{offset: 5 * time.Second, ele: 500, noPos: true},
		{lat: 52.501, lon: 13.401, ele: 34, offset: 10 * time.Second},
		{lat: 52.502, lon: 13.402, ele: 32, offset: 20 * time.Second},
		{lat: 52.503, lon: 13.403, ele: 40, offset: 30 * time.Second},
	})

	tracks, err := geotrack.Collect(Decode(bytes.NewReader(data), "2021_06_15_Commute.fit"))
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	tr := tracks[0]
	assert.Equal(t, "Commute", tr.Name)
	assert.Equal(t, "15.06.2021", tr.Date)
	require.Len(t, tr.Points, 4)
	assert.InDelta(t, 52.5, tr.Points[0].Lat, 1e-6)
	assert.InDelta(t, 13.4, tr.Points[0].Lon, 1e-6)
	assert.InDelta(t, 30.0, tr.Points[0].Elevation.Get(), 0.2)
	assert.InDelta(t, 12.0, tr.TotalElevationGain, 0.5)
	assert.True(t, start.Equal(tr.StartTime.Get()))
	assert.True(t, start.Add(30*time.Second).Equal(tr.EndTime.Get()))
	assert.InDelta(t, 30.0, tr.TotalDuration, 1e-9)
}

func TestDecodeWithoutRecords(t *testing.T) {
	data := buildActivity(t, time.Date(2021, 6, 15, 6, 0, 0, 0, time.UTC), nil)

	_, err := geotrack.Collect(Decode(bytes.NewReader(data), "empty.fit"))

	var formatErr *geotrack.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "fit", formatErr.Format)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := geotrack.Collect(Decode(bytes.NewReader([]byte("definitely not a fit file")), "bad.fit"))

	var parseErr *geotrack.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

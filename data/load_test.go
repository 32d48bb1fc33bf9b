package data

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk>
    <name>Evening Walk</name>
    <trkseg>
      <trkpt lat="48.1" lon="11.5"><ele>500</ele><time>2022-03-01T17:00:00Z</time></trkpt>
      <trkpt lat="48.2" lon="11.6"><ele>510</ele><time>2022-03-01T17:30:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

const sampleTCX = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Lap>
        <Track>
          <Trackpoint>
            <Time>2022-03-02T08:00:00Z</Time>
            <Position><LatitudeDegrees>48.1</LatitudeDegrees><LongitudeDegrees>11.5</LongitudeDegrees></Position>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

func gzipped(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name    string
		format  Format
		gzipped bool
	}{
		{"a.gpx", FormatGPX, false},
		{"a.GPX", FormatGPX, false},
		{"a.tcx.gz", FormatTCX, true},
		{"a.fit.GZ", FormatFIT, true},
	}

	for _, c := range cases {
		format, gz, err := DetectFormat(c.name)
		require.NoError(t, err, c.name)
		assert.Equal(t, c.format, format, c.name)
		assert.Equal(t, c.gzipped, gz, c.name)
	}

	_, _, err := DetectFormat("track.kml")
	var unsupported *geotrack.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".kml", unsupported.Extension)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "walk.gpx", []byte(sampleGPX))

	tracks, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Evening Walk", tracks[0].Name)
	assert.Equal(t, "walk.gpx", tracks[0].Filename)
	assert.Len(t, tracks[0].Points, 2)
}

func TestLoadFileGzipped(t *testing.T) {
	dir := t.TempDir()
	plainPath := writeFile(t, dir, "walk.gpx", []byte(sampleGPX))
	gzPath := writeFile(t, dir, "walk.gpx.gz", gzipped(t, sampleGPX))

	plain, err := LoadFile(plainPath)
	require.NoError(t, err)

	tracks, err := LoadFile(gzPath)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "walk.gpx.gz", tracks[0].Filename)
	assert.InDelta(t, 10.0, tracks[0].TotalElevationGain, 1e-9)

	for i := range tracks {
		tracks[i].Filename = ""
	}
	for i := range plain {
		plain[i].Filename = ""
	}
	assert.Equal(t, plain, tracks)
}

func TestLoadFileMislabeledXML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "run.gpx", []byte(sampleTCX))

	tracks, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "run", tracks[0].Name)
}

func TestLoadFileUnknownRoot(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "x.gpx", []byte(`<kml></kml>`))

	_, err := LoadFile(p)
	var formatErr *geotrack.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadFileUnsupportedBeforeRead(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.kml"))
	var unsupported *geotrack.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/run.tcx":
			_, _ = w.Write([]byte(sampleTCX))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	u := srv.URL + "/files/run.tcx"
	tracks, err := LoadURL(context.Background(), srv.Client(), u, 0)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, u, tracks[0].Filename)
	assert.Equal(t, "run", tracks[0].Name)

	_, err = LoadURL(context.Background(), srv.Client(), srv.URL+"/files/missing.gpx", 0)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))

	_, err = LoadURL(context.Background(), srv.Client(), u, int64(len(sampleTCX)-1))
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	tracks, err = LoadURL(context.Background(), srv.Client(), u, int64(len(sampleTCX)))
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestLoadAllKeepsOrderAndSettles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "walk.gpx", []byte(sampleGPX))
	bad := writeFile(t, dir, "broken.gpx", []byte(`<gpx><trk>`))
	run := writeFile(t, dir, "run.tcx.gz", gzipped(t, sampleTCX))

	loader := &Loader{Workers: 3}
	results := loader.LoadAll(context.Background(), []string{good, bad, run, "notes.txt"})
	require.Len(t, results, 4)

	assert.Equal(t, good, results[0].Source)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Error(t, results[3].Err)

	tracks := Tracks(results)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Evening Walk", tracks[0].Name)
	assert.Equal(t, "run", tracks[1].Name)
}

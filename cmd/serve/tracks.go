package serve

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bgraf/trackmix/data"
	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/filesystem"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/bgraf/trackmix/render"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type trackView struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Filename      string           `json:"filename"`
	Src           string           `json:"src,omitempty"`
	Date          string           `json:"date,omitempty"`
	Timestamp     *time.Time       `json:"timestamp,omitempty"`
	Label         string           `json:"label"`
	Tooltip       string           `json:"tooltip"`
	Style         render.Style     `json:"style"`
	DistanceKm    float64          `json:"distanceKm"`
	ElevationGain float64          `json:"elevationGain"`
	Duration      float64          `json:"duration"`
	Type          string           `json:"type,omitempty"`
	Equipment     string           `json:"equipment,omitempty"`
	ExternalURL   string           `json:"externalUrl,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	Points        []geotrack.Point `json:"points,omitempty"`
}

type failureView struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

func (api *serveAPI) view(t *geotrack.Track, withPoints bool) trackView {
	v := trackView{
		ID:            t.ID,
		Name:          t.Name,
		Filename:      t.Filename,
		Src:           t.Src,
		Date:          t.Date,
		Label:         render.ListLabel(t),
		Tooltip:       render.Tooltip(t, api.opts.Locale),
		Style:         api.opts.Styler.Style(t),
		DistanceKm:    t.DistanceKm(),
		ElevationGain: t.TotalElevationGain,
		Duration:      t.TotalDuration,
		Type:          t.Type,
		Equipment:     t.Equipment,
		ExternalURL:   t.ExternalURL,
		ImageURL:      t.ImageURL,
	}

	if t.Timestamp.IsSome() {
		ts := t.Timestamp.Get()
		v.Timestamp = &ts
	}

	if withPoints {
		v.Points = t.Points
	}

	return v
}

func (api *serveAPI) views(tracks []geotrack.Track) []trackView {
	views := make([]trackView, len(tracks))
	for i := range tracks {
		views[i] = api.view(&tracks[i], false)
	}
	return views
}

// statusFor maps load errors to response codes. Anything that is not a
// decoding error is treated as an upstream failure.
func statusFor(err error) int {
	var (
		unsupported *geotrack.UnsupportedFormatError
		formatErr   *geotrack.FormatError
		parseErr    *geotrack.ParseError
	)

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &formatErr), errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadGateway
}

func (api *serveAPI) ServeTracks(c *gin.Context) {
	filter, err := geotrack.ParseFilter(c.Query("minDate"), c.Query("maxDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tracks := filter.Apply(api.store.TracksByDate())

	c.JSON(http.StatusOK, gin.H{"tracks": api.views(tracks)})
}

func (api *serveAPI) ServeTrack(c *gin.Context) {
	guid, err := uuid.Parse(c.Param("GUID"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	track, ok := api.store.TrackByGUID(guid)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.JSON(http.StatusOK, api.view(&track, true))
}

// UploadTracks decodes every uploaded file. Activity exports uploaded in the
// same request are applied to all stored tracks afterwards.
func (api *serveAPI) UploadTracks(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files := form.File["files[]"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	var (
		loaded     []geotrack.Track
		failures   []failureView
		activities []strava.Activity
		firstErr   error
	)

	fail := func(source string, err error) {
		log.Printf("upload '%s' failed: %s", source, err)
		failures = append(failures, failureView{Source: source, Error: err.Error()})
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, fh := range files {
		if filesystem.Extension(fh.Filename) == ".csv" {
			rows, err := api.readActivities(fh)
			if err != nil {
				fail(fh.Filename, err)
				continue
			}
			activities = append(activities, rows...)
			continue
		}

		tracks, err := decodeUpload(fh)
		if err != nil {
			fail(fh.Filename, err)
			continue
		}
		loaded = append(loaded, api.store.Add(tracks...)...)
	}

	matched := 0
	if len(activities) > 0 {
		matched = api.store.Enrich(activities)
		for i := range loaded {
			if t, ok := api.store.TrackByGUID(loaded[i].ID); ok {
				loaded[i] = t
			}
		}
	}

	status := http.StatusOK
	if len(loaded) == 0 && len(activities) == 0 && firstErr != nil {
		status = statusFor(firstErr)
	}

	c.JSON(status, gin.H{
		"tracks":   api.views(loaded),
		"failures": failures,
		"enriched": matched,
	})
}

func decodeUpload(fh *multipart.FileHeader) ([]geotrack.Track, error) {
	if _, _, err := data.DetectFormat(fh.Filename); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return geotrack.Collect(data.Decode(f, fh.Filename))
}

func (api *serveAPI) readActivities(fh *multipart.FileHeader) ([]strava.Activity, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return strava.ReadActivities(f, api.opts.Columns)
}

type urlRequest struct {
	URL string `json:"url" binding:"required"`
}

func (api *serveAPI) LoadTrackURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api.loadURL(c, req.URL)
}

// ServeIndex loads the track referenced by the map query parameter. Without
// parameter it lists the stored tracks.
func (api *serveAPI) ServeIndex(c *gin.Context) {
	if m := c.Query("map"); m != "" {
		api.loadURL(c, m)
		return
	}

	api.ServeTracks(c)
}

func (api *serveAPI) loadURL(c *gin.Context, rawURL string) {
	rawURL = strings.TrimSpace(rawURL)
	if !data.IsURL(rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must start with http:// or https://"})
		return
	}

	results := api.opts.Loader.LoadAll(c.Request.Context(), []string{rawURL})
	if err := results[0].Err; err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	added := api.store.Add(results[0].Tracks...)
	c.JSON(http.StatusCreated, gin.H{"tracks": api.views(added)})
}

func (api *serveAPI) ClearTracks(c *gin.Context) {
	api.store.Clear()
	c.Status(http.StatusNoContent)
}

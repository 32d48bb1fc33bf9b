package serve

import (
	"log"
	"net/http"
	"time"

	"github.com/bgraf/trackmix/config"
	"github.com/bgraf/trackmix/data"
	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/export"
	"github.com/bgraf/trackmix/render"
	"github.com/gin-gonic/gin"
	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
)

// Options configures the HTTP API.
type Options struct {
	Locale    monday.Locale
	PublicURL string
	Creator   string
	Author    string
	Styler    *render.Styler
	Loader    *data.Loader
	Columns   strava.Columns
}

// DefaultOptions reads the options from the configuration.
func DefaultOptions() Options {
	return Options{
		Locale:    monday.Locale(config.Locale()),
		PublicURL: config.ServePublicURL(),
		Creator:   config.ExportCreator(),
		Author:    config.ExportAuthor(),
		Styler: render.NewStyler(
			render.Style{
				Color:   config.StyleColor(),
				Weight:  config.StyleWeight(),
				Opacity: config.StyleOpacity(),
			},
			config.DetectColors(),
		),
		Loader:  data.NewDefaultLoader(),
		Columns: config.StravaColumns(),
	}
}

func RunServeCmd(cmd *cobra.Command, args []string) error {
	store := data.NewStore()

	opts := DefaultOptions()

	if len(args) > 0 {
		batch, err := data.LoadArgs(cmd.Context(), opts.Loader, args)
		if err != nil {
			return err
		}
		store.Add(batch.Tracks()...)
		log.Printf("preloaded %d tracks", store.Len())
	}

	r := NewRouter(store, opts)

	address := config.ServeAddress()
	log.Printf("listening on %s", address)

	if err := r.Run(address); err != nil {
		log.Fatal(err)
	}

	return nil
}

type serveAPI struct {
	store *data.Store
	opts  Options
}

// NewRouter registers all routes on a new gin engine.
func NewRouter(store *data.Store, opts Options) *gin.Engine {
	if opts.Styler == nil {
		opts.Styler = render.NewStyler(render.Style{Color: "#0000ff", Weight: 3, Opacity: 0.75}, true)
	}
	if len(opts.Columns.FileName) == 0 {
		opts.Columns = strava.DefaultColumns
	}
	if opts.Loader == nil {
		opts.Loader = &data.Loader{Client: &http.Client{Timeout: time.Minute}, Workers: 1}
	}

	api := &serveAPI{
		store: store,
		opts:  opts,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", api.ServeIndex)
	r.GET("/tracks", api.ServeTracks)
	r.GET("/tracks/:GUID", api.ServeTrack)
	r.POST("/tracks", api.UploadTracks)
	r.POST("/tracks/url", api.LoadTrackURL)
	r.DELETE("/tracks", api.ClearTracks)
	r.POST("/enrich", api.Enrich)
	r.GET("/export/"+export.DefaultGPXName, api.ExportGPX)
	r.GET("/share.png", api.ServeShareCode)

	return r
}

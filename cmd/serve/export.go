package serve

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bgraf/trackmix/data/strava"
	"github.com/bgraf/trackmix/export"
	"github.com/bgraf/trackmix/render"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const shareCodeSize = 256

// ExportGPX merges all stored tracks into a downloadable GPX document.
func (api *serveAPI) ExportGPX(c *gin.Context) {
	var buf bytes.Buffer

	err := export.WriteGPX(&buf, api.store.Tracks(), export.GPXOptions{
		Creator:  api.opts.Creator,
		Author:   api.opts.Author,
		Locale:   api.opts.Locale,
		Describe: render.Description,
	})
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error during GPX writing")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultGPXName))
	c.Data(http.StatusOK, export.GPXContentType, buf.Bytes())
}

// Enrich applies an uploaded activity export to the stored tracks.
func (api *serveAPI) Enrich(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activities, err := api.readActivities(fh)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, strava.ErrMissingColumn) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	matched := api.store.Enrich(activities)

	c.JSON(http.StatusOK, gin.H{
		"activities": len(activities),
		"matched":    matched,
	})
}

// ServeShareCode renders a QR code linking to the map view of a track URL.
func (api *serveAPI) ServeShareCode(c *gin.Context) {
	target := c.Query("map")
	if target == "" {
		c.String(http.StatusBadRequest, "missing map parameter")
		return
	}

	link := strings.TrimSuffix(api.opts.PublicURL, "/") + "/?map=" + url.QueryEscape(target)

	png, err := qrcode.Encode(link, qrcode.Medium, shareCodeSize)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error during QR encoding")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

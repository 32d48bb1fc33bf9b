package render

import (
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/lucasb-eyer/go-colorful"
)

const defaultColor = "#0000ff"

// Style describes how a track line is drawn.
type Style struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

var filenameColors = []struct {
	pattern *regexp.Regexp
	color   string
}{
	{regexp.MustCompile(`-(Hike|Walk)\.gpx`), "#ffc0cb"},
	{regexp.MustCompile(`-Run\.gpx`), "#ff0000"},
	{regexp.MustCompile(`-Ride\.gpx`), "#00ffff"},
}

// Palette hands out one color per activity type. Colors are random but stay
// the same for a type during the lifetime of the palette.
type Palette struct {
	mu     sync.Mutex
	colors map[string]colorful.Color
}

func NewPalette() *Palette {
	return &Palette{
		colors: make(map[string]colorful.Color),
	}
}

func (p *Palette) HexColor(activityType string) string {
	key := strings.ToLower(strings.TrimSpace(activityType))

	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.colors[key]
	if !ok {
		c = colorful.HappyColor()
		p.colors[key] = c
	}

	return c.Hex()
}

// Styler derives the line style of tracks.
type Styler struct {
	base    Style
	detect  bool
	palette *Palette
}

// NewStyler validates the base color and falls back to blue if it cannot be
// parsed.
func NewStyler(base Style, detectColors bool) *Styler {
	c, err := colorful.Hex(base.Color)
	if err != nil {
		log.Printf("invalid line color '%s', using %s", base.Color, defaultColor)
		base.Color = defaultColor
	} else {
		base.Color = c.Hex()
	}

	return &Styler{
		base:    base,
		detect:  detectColors,
		palette: NewPalette(),
	}
}

func (s *Styler) Style(t *geotrack.Track) Style {
	style := s.base
	if !s.detect {
		return style
	}

	for _, fc := range filenameColors {
		if fc.pattern.MatchString(t.Filename) {
			style.Color = fc.color
			return style
		}
	}

	if t.Type != "" {
		style.Color = s.palette.HexColor(t.Type)
	}

	return style
}

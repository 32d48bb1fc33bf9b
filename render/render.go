// Package render produces the text shown next to a track: tooltips, list
// labels and line styles.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/bgraf/trackmix/geotrack"
	"github.com/goodsign/monday"
)

const (
	pointTimeLayout = "02.01.2006 15:04:05"
	lineBreak       = "<br>"
)

// FormatDuration renders seconds as H:mm. Hours are not wrapped at 24.
// Negative durations, caused by unordered timestamps, get a leading minus.
func FormatDuration(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	total := int(seconds / 60)
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

// Description is the activity summary stored in exported <desc> elements.
// It is empty if the track carries neither type nor duration. Type and
// equipment are written as is; the GPX encoder escapes them.
func Description(t *geotrack.Track, locale monday.Locale) string {
	return description(t, locale, func(s string) string { return s })
}

func description(t *geotrack.Track, locale monday.Locale, escape func(string) string) string {
	l := LabelsFor(locale)

	var sb strings.Builder
	if t.Type != "" {
		sb.WriteString(lineBreak)
		sb.WriteString(escape(t.Type))
		if t.Equipment != "" {
			sb.WriteString(": ")
			sb.WriteString(escape(t.Equipment))
		}
	}
	if t.TotalDuration != 0 {
		fmt.Fprintf(&sb, "%s%s: %s", lineBreak, l.Duration, FormatDuration(t.TotalDuration))
	}

	return sb.String()
}

// Tooltip returns the HTML tooltip of a track. All track text is escaped.
// Line breaks in the GPX description survive since exported descriptions
// use them as separators.
func Tooltip(t *geotrack.Track, locale monday.Locale) string {
	l := LabelsFor(locale)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<strong>%s</strong>", html.EscapeString(t.Name))

	if ts := t.FirstTime(); ts.IsSome() {
		fmt.Fprintf(&sb, "%s%s: %s", lineBreak, l.Date, monday.Format(ts.Get().Local(), pointTimeLayout, locale))
	}
	if t.Date != "" {
		fmt.Fprintf(&sb, "%s%s: %s", lineBreak, l.Date, html.EscapeString(t.Date))
	}

	fmt.Fprintf(&sb, "%s%s: %.1f %s", lineBreak, l.Distance, t.DistanceKm(), l.Km)

	sb.WriteString(escapeKeepBreaks(t.Description))
	sb.WriteString(description(t, locale, html.EscapeString))

	if t.TotalElevationGain != 0 {
		fmt.Fprintf(&sb, "%s%s: %.0f %s", lineBreak, l.Elevation, t.TotalElevationGain, l.Meters)
	}
	if t.ImageURL != "" {
		fmt.Fprintf(&sb, "%s<img src='%s'>", lineBreak, html.EscapeString(t.ImageURL))
	}

	return sb.String()
}

// ListLabel is the one line caption of a track in lists. The explicit date
// wins over the time of the first point.
func ListLabel(t *geotrack.Track) string {
	if t.Date != "" {
		return t.Date + " " + t.Name
	}
	if ts := t.FirstTime(); ts.IsSome() {
		return ts.Get().Local().Format(pointTimeLayout) + " " + t.Name
	}
	return t.Name
}

var escapedBreaks = strings.NewReplacer("&lt;br&gt;", lineBreak, "&lt;br/&gt;", lineBreak, "&lt;br /&gt;", lineBreak)

// escapeKeepBreaks escapes s and restores plain <br> elements.
func escapeKeepBreaks(s string) string {
	return escapedBreaks.Replace(html.EscapeString(s))
}

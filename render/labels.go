package render

import (
	"github.com/goodsign/monday"
)

// Labels holds the captions used in tooltips and exported descriptions.
type Labels struct {
	Date      string
	Distance  string
	Km        string
	Duration  string
	Elevation string
	Meters    string
}

var labels = map[monday.Locale]Labels{
	monday.LocaleEnUS: {
		Date:      "Date",
		Distance:  "Distance",
		Km:        "km",
		Duration:  "Duration",
		Elevation: "Total ascent",
		Meters:    "m",
	},
	monday.LocaleRuRU: {
		Date:      "Дата",
		Distance:  "Расстояние",
		Km:        "км",
		Duration:  "Длительность",
		Elevation: "Общий подъем",
		Meters:    "м",
	},
}

// LabelsFor returns the captions for locale and falls back to English.
func LabelsFor(locale monday.Locale) Labels {
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels[monday.LocaleEnUS]
}

package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

var (
	KeyLocale = "locale"

	KeyStyleColor        = "style.color"
	KeyStyleWeight       = "style.weight"
	KeyStyleOpacity      = "style.opacity"
	KeyStyleDetectColors = "style.detect_colors"

	KeyFilterMinDate = "filter.min_date"
	KeyFilterMaxDate = "filter.max_date"

	KeyHTTPTimeout    = "http.timeout"
	KeyHTTPMaxBody    = "http.max_body_size"
	KeyServeAddress   = "serve.address"
	KeyServePublicURL = "serve.public_url"

	KeyExportCreator = "export.creator"
	KeyExportAuthor  = "export.author"

	KeyLoadWorkers = "load.workers"
)

// SetDefaults registers the default of every key. It is called once during
// command initialization.
func SetDefaults() {
	viper.SetDefault(KeyLocale, "en_US")

	viper.SetDefault(KeyStyleColor, "#0000ff")
	viper.SetDefault(KeyStyleWeight, 3)
	viper.SetDefault(KeyStyleOpacity, 0.75)
	viper.SetDefault(KeyStyleDetectColors, true)

	viper.SetDefault(KeyHTTPTimeout, time.Duration(0))
	viper.SetDefault(KeyHTTPMaxBody, DefaultMaxBodySize)
	viper.SetDefault(KeyServeAddress, ":8000")
	viper.SetDefault(KeyServePublicURL, "http://localhost:8000")

	viper.SetDefault(KeyExportCreator, "trackmix")
	viper.SetDefault(KeyExportAuthor, "trackmix")

	viper.SetDefault(KeyLoadWorkers, runtime.NumCPU())

	setStravaDefaults()
}

func Locale() string {
	return viper.GetString(KeyLocale)
}

func StyleColor() string {
	return viper.GetString(KeyStyleColor)
}

func StyleWeight() int {
	return viper.GetInt(KeyStyleWeight)
}

func StyleOpacity() float64 {
	return viper.GetFloat64(KeyStyleOpacity)
}

func DetectColors() bool {
	return viper.GetBool(KeyStyleDetectColors)
}

func FilterMinDate() string {
	return viper.GetString(KeyFilterMinDate)
}

func FilterMaxDate() string {
	return viper.GetString(KeyFilterMaxDate)
}

func HTTPTimeout() time.Duration {
	return viper.GetDuration(KeyHTTPTimeout)
}

// DefaultMaxBodySize limits downloaded track files to 64 MiB.
const DefaultMaxBodySize int64 = 64 << 20

// HTTPMaxBodySize is the largest remote track file in bytes that is accepted.
func HTTPMaxBodySize() int64 {
	if n := viper.GetInt64(KeyHTTPMaxBody); n > 0 {
		return n
	}
	return DefaultMaxBodySize
}

func ServeAddress() string {
	return viper.GetString(KeyServeAddress)
}

func ServePublicURL() string {
	return viper.GetString(KeyServePublicURL)
}

func ExportCreator() string {
	return viper.GetString(KeyExportCreator)
}

func ExportAuthor() string {
	return viper.GetString(KeyExportAuthor)
}

func LoadWorkers() int {
	if n := viper.GetInt(KeyLoadWorkers); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func TrackExtensions() []string {
	return []string{".gpx", ".tcx", ".fit"}
}

func GzipExtension() string {
	return ".gz"
}

func CSVExtensions() []string {
	return []string{".csv"}
}

func DefaultExportFile() string {
	return "all.gpx"
}

func DefaultPointsFile() string {
	return "points.parquet"
}

package config

import (
	"github.com/bgraf/trackmix/data/strava"
	"github.com/spf13/viper"
)

var (
	KeyStravaFileName     = "strava.columns.file_name"
	KeyStravaActivityName = "strava.columns.activity_name"
	KeyStravaActivityType = "strava.columns.activity_type"
	KeyStravaEquipment    = "strava.columns.equipment"
	KeyStravaDuration     = "strava.columns.duration"
)

func setStravaDefaults() {
	viper.SetDefault(KeyStravaFileName, strava.DefaultColumns.FileName)
	viper.SetDefault(KeyStravaActivityName, strava.DefaultColumns.ActivityName)
	viper.SetDefault(KeyStravaActivityType, strava.DefaultColumns.ActivityType)
	viper.SetDefault(KeyStravaEquipment, strava.DefaultColumns.Equipment)
	viper.SetDefault(KeyStravaDuration, strava.DefaultColumns.Duration)
}

// StravaColumns returns the configured header names of the activity export.
func StravaColumns() strava.Columns {
	orDefault := func(key string, fallback []string) []string {
		if names := viper.GetStringSlice(key); len(names) > 0 {
			return names
		}
		return fallback
	}

	return strava.Columns{
		FileName:     orDefault(KeyStravaFileName, strava.DefaultColumns.FileName),
		ActivityName: orDefault(KeyStravaActivityName, strava.DefaultColumns.ActivityName),
		ActivityType: orDefault(KeyStravaActivityType, strava.DefaultColumns.ActivityType),
		Equipment:    orDefault(KeyStravaEquipment, strava.DefaultColumns.Equipment),
		Duration:     orDefault(KeyStravaDuration, strava.DefaultColumns.Duration),
	}
}

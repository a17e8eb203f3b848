package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/heartline/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDefaultPatient:
			settings.DefaultPatient = value
		case constants.SettingWarningHour:
			hour, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing warning_hour: %w", err)
			}
			settings.WarningHour = hour
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingDefaultPatient:       settings.DefaultPatient,
		constants.SettingWarningHour:          strconv.Itoa(settings.WarningHour),
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		DefaultPatient:       constants.DefaultPatient,
		WarningHour:          constants.DefaultWarningHour,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultPatient == "" {
		settings.DefaultPatient = constants.DefaultPatient
	}
	if settings.WarningHour <= 0 || settings.WarningHour > 23 {
		settings.WarningHour = constants.DefaultWarningHour
	}
}

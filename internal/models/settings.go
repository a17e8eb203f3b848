package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether streak notifications are delivered
	DefaultPatient       string `json:"default_patient"`       // patient used when --patient is not given
	WarningHour          int    `json:"warning_hour"`          // local hour after which streak warnings may fire
}

package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultPatient       = "default_patient"
	SettingWarningHour          = "warning_hour"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
	DefaultPatient              = "me"
)

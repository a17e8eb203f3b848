package constants

import "time"

// DayStatus is the completion classification of a journey day
type DayStatus string

// IntakeStatus is the recorded outcome of a scheduled medication dose
type IntakeStatus string

// NoticeKind identifies a class of streak notification
type NoticeKind string

const (
	AppName            = "heartline"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/heartline/heartline.db"
	Version            = "v0.3.0"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used for settings (HH:MM)
	TimeFormat = "15:04"

	// OnboardingCacheKey is the fixed key of the cached onboarding payload
	OnboardingCacheKey = "onboarding_data"

	// Streak constants
	StreakThreshold    = 3
	TasksPerDay        = 3
	DefaultWarningHour = 18

	// Log rotation
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "heartline-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "heartline-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.heartline"
	TrayExecutablePrefix   = "heartline-tray"
	NotifyTimeout          = 5 * time.Second

	// Suppression flags kept in Redis expire after this long
	FlagTTL = 48 * time.Hour

	// Day Status constants
	DayComplete   DayStatus = "complete"
	DayPartial    DayStatus = "partial"
	DayIncomplete DayStatus = "incomplete"

	// Intake Status constants
	IntakeTaken     IntakeStatus = "taken"
	IntakeMissed    IntakeStatus = "missed"
	IntakeDelayed   IntakeStatus = "delayed"
	IntakeScheduled IntakeStatus = "scheduled"

	// Notice kinds
	NoticeAchievement NoticeKind = "achievement"
	NoticeWarning     NoticeKind = "warning"
)

// Environment variables
const (
	EnvDBConnection = "HEARTLINE_DB_CONNECTION"
	EnvConfig       = "HEARTLINE_CONFIG"
	EnvPatient      = "HEARTLINE_PATIENT"
	EnvRedisURL     = "HEARTLINE_REDIS_URL"
	EnvDebug        = "HEARTLINE_DEBUG"
	EnvLogLevel     = "HEARTLINE_LOG_LEVEL"
)

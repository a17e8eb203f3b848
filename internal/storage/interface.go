package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/heartline/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	ProfileStore
	DailyTaskStore
	IntakeStore
	MetricStore
	KVStore
	FlagStore

	// Utils
	GetConfigPath() string
}

type ProfileStore interface {
	GetProfile(ctx context.Context, patientID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
}

type DailyTaskStore interface {
	GetDailyTask(ctx context.Context, patientID, day string) (models.DailyTask, error)
	// GetDailyTasks returns the task flags of a patient for days in [startDay, endDay].
	GetDailyTasks(ctx context.Context, patientID, startDay, endDay string) ([]models.DailyTask, error)
	SaveDailyTask(ctx context.Context, task models.DailyTask) error
}

type IntakeStore interface {
	AddMedicationIntake(ctx context.Context, intake models.MedicationIntake) error
	// GetTakenIntakes returns only intakes with status "taken" and a parseable taken_at.
	GetTakenIntakes(ctx context.Context, patientID string) ([]models.MedicationIntake, error)
	// GetMedicationIntakes returns the most recent intakes of any status, newest first.
	GetMedicationIntakes(ctx context.Context, patientID string, limit int) ([]models.MedicationIntake, error)
}

type MetricStore interface {
	AddHealthMetric(ctx context.Context, metric models.HealthMetric) error
	// GetHealthMetrics returns metrics newest first; limit <= 0 means no limit.
	GetHealthMetrics(ctx context.Context, patientID string, limit int) ([]models.HealthMetric, error)
}

// KVStore is the local persistent key-value table used for cached payloads.
type KVStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
}

// FlagStore holds one-shot boolean flags such as notification suppression.
type FlagStore interface {
	IsFlagSet(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string) error
}

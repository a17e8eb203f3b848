package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// DailyTask holds the explicit per-day completion flags for a patient
type DailyTask struct {
	PatientID   string    `json:"patient_id"`
	Day         string    `json:"day"` // YYYY-MM-DD
	Medications bool      `json:"medications"`
	Health      bool      `json:"health"`
	Education   bool      `json:"education"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MedicationIntake struct {
	ID             string                 `json:"id"`
	PatientID      string                 `json:"patient_id"`
	MedicationName string                 `json:"medication_name"`
	Status         constants.IntakeStatus `json:"status"`
	ScheduledFor   *time.Time             `json:"scheduled_for,omitempty"`
	TakenAt        *time.Time             `json:"taken_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (m *MedicationIntake) Validate() error {
	if m.PatientID == "" {
		return fmt.Errorf("patient id cannot be empty")
	}
	if m.MedicationName == "" {
		return fmt.Errorf("medication name cannot be empty")
	}
	if !ValidIntakeStatus(m.Status) {
		return fmt.Errorf("invalid intake status %q", m.Status)
	}
	if m.Status == constants.IntakeTaken && m.TakenAt == nil {
		return fmt.Errorf("taken intake requires a taken_at timestamp")
	}
	return nil
}

// ValidIntakeStatus reports whether s is one of the known intake statuses
func ValidIntakeStatus(s constants.IntakeStatus) bool {
	switch s {
	case constants.IntakeTaken, constants.IntakeMissed, constants.IntakeDelayed, constants.IntakeScheduled:
		return true
	}
	return false
}

type HealthMetric struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	MetricType string    `json:"metric_type"` // e.g. blood_pressure, heart_rate, weight
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *HealthMetric) Validate() error {
	if h.PatientID == "" {
		return fmt.Errorf("patient id cannot be empty")
	}
	if h.MetricType == "" {
		return fmt.Errorf("metric type cannot be empty")
	}
	if h.Value == "" {
		return fmt.Errorf("metric value cannot be empty")
	}
	if h.RecordedAt.IsZero() {
		return fmt.Errorf("recorded_at cannot be empty")
	}
	return nil
}

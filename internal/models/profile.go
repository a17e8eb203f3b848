package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// Profile is the stored patient record that anchors the recovery journey
type Profile struct {
	PatientID      string    `json:"patient_id"`
	Name           string    `json:"name,omitempty"`
	IndexEventDate string    `json:"index_event_date"` // YYYY-MM-DD
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Profile) Validate() error {
	if p.PatientID == "" {
		return fmt.Errorf("patient id cannot be empty")
	}
	if p.IndexEventDate == "" {
		return fmt.Errorf("index event date cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, p.IndexEventDate); err != nil {
		return fmt.Errorf("invalid index event date (expected YYYY-MM-DD): %w", err)
	}
	return nil
}

// OnboardingData is the questionnaire payload cached locally before a profile exists
type OnboardingData struct {
	IndexEventDate  string    `json:"indexEventDate"`
	EventType       string    `json:"eventType,omitempty"`
	HasCardiacRehab bool      `json:"hasCardiacRehab"`
	SmokingStatus   string    `json:"smokingStatus,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
}

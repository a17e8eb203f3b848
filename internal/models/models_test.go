package models

import (
	"testing"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestStatusForCount(t *testing.T) {
	tests := []struct {
		count int
		want  constants.DayStatus
	}{
		{0, constants.DayIncomplete},
		{1, constants.DayPartial},
		{2, constants.DayPartial},
		{3, constants.DayComplete},
	}

	for _, tt := range tests {
		if got := StatusForCount(tt.count); got != tt.want {
			t.Errorf("StatusForCount(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestDayRecord_Finalize(t *testing.T) {
	tests := []struct {
		name      string
		day       DayRecord
		wantCount int
		wantState constants.DayStatus
	}{
		{
			name:      "nothing done",
			day:       DayRecord{},
			wantCount: 0,
			wantState: constants.DayIncomplete,
		},
		{
			name:      "medications only",
			day:       DayRecord{MedicationsCompleted: true},
			wantCount: 1,
			wantState: constants.DayPartial,
		},
		{
			name:      "two of three",
			day:       DayRecord{MedicationsCompleted: true, EducationCompleted: true},
			wantCount: 2,
			wantState: constants.DayPartial,
		},
		{
			name:      "all three",
			day:       DayRecord{MedicationsCompleted: true, HealthMetricsLogged: true, EducationCompleted: true},
			wantCount: 3,
			wantState: constants.DayComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.day.Finalize()
			if tt.day.TasksCompletedCount != tt.wantCount {
				t.Errorf("TasksCompletedCount = %d, want %d", tt.day.TasksCompletedCount, tt.wantCount)
			}
			if tt.day.Status != tt.wantState {
				t.Errorf("Status = %s, want %s", tt.day.Status, tt.wantState)
			}
		})
	}
}

func TestMedicationIntake_Validate(t *testing.T) {
	taken := ptrTime(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		intake  MedicationIntake
		wantErr bool
	}{
		{
			name:    "valid taken intake",
			intake:  MedicationIntake{PatientID: "p1", MedicationName: "aspirin", Status: constants.IntakeTaken, TakenAt: taken},
			wantErr: false,
		},
		{
			name:    "valid missed intake without timestamp",
			intake:  MedicationIntake{PatientID: "p1", MedicationName: "aspirin", Status: constants.IntakeMissed},
			wantErr: false,
		},
		{
			name:    "taken without timestamp",
			intake:  MedicationIntake{PatientID: "p1", MedicationName: "aspirin", Status: constants.IntakeTaken},
			wantErr: true,
		},
		{
			name:    "unknown status",
			intake:  MedicationIntake{PatientID: "p1", MedicationName: "aspirin", Status: "forgotten"},
			wantErr: true,
		},
		{
			name:    "missing medication name",
			intake:  MedicationIntake{PatientID: "p1", Status: constants.IntakeMissed},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intake.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("MedicationIntake.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"valid", Profile{PatientID: "p1", IndexEventDate: "2026-01-01"}, false},
		{"missing patient", Profile{IndexEventDate: "2026-01-01"}, true},
		{"missing date", Profile{PatientID: "p1"}, true},
		{"bad date", Profile{PatientID: "p1", IndexEventDate: "01/01/2026"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Profile.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsRoundTripDefaults(t *testing.T) {
	data := SettingsToMap(DefaultSettings())
	settings, err := MapToSettings(data)
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("MapToSettings(SettingsToMap(defaults)) = %+v, want %+v", settings, DefaultSettings())
	}

	if _, err := MapToSettings(map[string]string{constants.SettingWarningHour: "evening"}); err == nil {
		t.Error("expected error for non-numeric warning_hour")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{WarningHour: 30}
	ApplyDefaultSettings(&s)
	if s.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", s.Timezone, constants.DefaultTimezone)
	}
	if s.DefaultPatient != constants.DefaultPatient {
		t.Errorf("DefaultPatient = %q, want %q", s.DefaultPatient, constants.DefaultPatient)
	}
	if s.WarningHour != constants.DefaultWarningHour {
		t.Errorf("WarningHour = %d, want %d", s.WarningHour, constants.DefaultWarningHour)
	}
}

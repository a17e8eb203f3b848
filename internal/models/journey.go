package models

import (
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// DayRecord is the completion projection of one calendar day of the journey
type DayRecord struct {
	DayIndex             int                 `json:"day_index"`
	CalendarDate         time.Time           `json:"calendar_date"`
	DateKey              string              `json:"date_key"`
	MedicationsCompleted bool                `json:"medications_completed"`
	HealthMetricsLogged  bool                `json:"health_metrics_logged"`
	EducationCompleted   bool                `json:"education_completed"`
	TasksCompletedCount  int                 `json:"tasks_completed_count"`
	Status               constants.DayStatus `json:"status"`
}

// Finalize derives TasksCompletedCount and Status from the three task booleans.
func (d *DayRecord) Finalize() {
	count := 0
	for _, done := range []bool{d.MedicationsCompleted, d.HealthMetricsLogged, d.EducationCompleted} {
		if done {
			count++
		}
	}
	d.TasksCompletedCount = count
	d.Status = StatusForCount(count)
}

// StatusForCount maps a completed-task count to the day status
func StatusForCount(count int) constants.DayStatus {
	switch {
	case count >= constants.TasksPerDay:
		return constants.DayComplete
	case count > 0:
		return constants.DayPartial
	default:
		return constants.DayIncomplete
	}
}

// StreakInfo summarizes runs of complete days over a journey
type StreakInfo struct {
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	IsOnStreak        bool   `json:"is_on_streak"`
	StreakStartDate   string `json:"streak_start_date,omitempty"`
	StreakEndDate     string `json:"streak_end_date,omitempty"`
	IsToday           bool   `json:"is_today"`
	TodayCompleted    bool   `json:"today_completed"`
	StreakBeforeToday int    `json:"streak_before_today"` // complete run ending the day before today
}

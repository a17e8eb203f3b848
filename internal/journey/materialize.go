// Package journey builds the per-day completion timeline of a recovery journey.
package journey

import (
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

// Data is the raw input of one materialization. Records belong to a single patient.
type Data struct {
	Tasks   []models.DailyTask
	Intakes []models.MedicationIntake
	Metrics []models.HealthMetric
}

// ResolveCompletion merges an explicit task flag with completion derived from logs.
// Either source alone marks the task done.
func ResolveCompletion(explicit, derived bool) bool {
	return explicit || derived
}

// Span returns the first day of the journey (the day after indexDate) and the
// number of days from it through today inclusive. The count is 0 when indexDate
// is today or later.
func Span(indexDate, today time.Time, loc *time.Location) (time.Time, int) {
	start := utils.AddDays(utils.StartOfDay(indexDate, loc), 1)
	total := utils.DaysBetween(start, utils.StartOfDay(today, loc)) + 1
	if total < 0 {
		total = 0
	}
	return start, total
}

// Materialize produces one DayRecord per calendar day from the day after
// indexDate through today, ascending and gapless. Timestamps are bucketed into
// days by their calendar date in loc.
func Materialize(indexDate, today time.Time, loc *time.Location, data Data) []models.DayRecord {
	start, total := Span(indexDate, today, loc)
	days := make([]models.DayRecord, 0, total)
	if total == 0 {
		return days
	}

	tasks := make(map[string]models.DailyTask, len(data.Tasks))
	for _, t := range data.Tasks {
		tasks[t.Day] = t
	}

	takenDays := make(map[string]bool)
	for _, m := range data.Intakes {
		if m.Status == constants.IntakeTaken && m.TakenAt != nil {
			takenDays[utils.DateKey(*m.TakenAt, loc)] = true
		}
	}

	metricDays := make(map[string]bool)
	for _, h := range data.Metrics {
		metricDays[utils.DateKey(h.RecordedAt, loc)] = true
	}

	for i := 0; i < total; i++ {
		date := utils.AddDays(start, i)
		key := date.Format(constants.DateFormat)
		explicit := tasks[key]

		day := models.DayRecord{
			DayIndex:             i + 1,
			CalendarDate:         date,
			DateKey:              key,
			MedicationsCompleted: ResolveCompletion(explicit.Medications, takenDays[key]),
			HealthMetricsLogged:  ResolveCompletion(explicit.Health, metricDays[key]),
			EducationCompleted:   explicit.Education,
		}
		day.Finalize()
		days = append(days, day)
	}
	return days
}

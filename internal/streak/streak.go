// Package streak summarizes runs of fully complete days in a recovery journey.
package streak

import (
	"sort"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

// Calculate computes the streak summary of days. todayKey is today's
// YYYY-MM-DD key. The input slice is not modified.
func Calculate(days []models.DayRecord, todayKey string) models.StreakInfo {
	info := models.StreakInfo{}
	if len(days) == 0 {
		return info
	}

	sorted := make([]models.DayRecord, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateKey < sorted[j].DateKey
	})

	// Current streak: walk back from the most recent day until a break
	last := len(sorted) - 1
	start := runStart(sorted, last)
	info.CurrentStreak = last - start + 1
	if info.CurrentStreak > 0 {
		info.StreakStartDate = sorted[start].DateKey
		info.StreakEndDate = sorted[last].DateKey
	}

	run := 0
	for _, d := range sorted {
		if d.Status == constants.DayComplete {
			run++
			if run > info.LongestStreak {
				info.LongestStreak = run
			}
		} else {
			run = 0
		}
	}

	info.IsOnStreak = info.CurrentStreak >= constants.StreakThreshold

	for i, d := range sorted {
		if d.DateKey != todayKey {
			continue
		}
		info.IsToday = true
		info.TodayCompleted = d.Status == constants.DayComplete
		if i > 0 {
			info.StreakBeforeToday = i - runStart(sorted, i-1)
		}
		break
	}

	return info
}

// runStart returns the index of the first day in the complete run ending at
// end, or end+1 when sorted[end] itself is not complete.
func runStart(sorted []models.DayRecord, end int) int {
	i := end
	for i >= 0 && sorted[i].Status == constants.DayComplete {
		i--
	}
	return i + 1
}

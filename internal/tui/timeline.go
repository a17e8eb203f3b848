package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

const (
	markDone = "●"
	markOpen = "○"
)

func statusStyle(s constants.DayStatus) func(...string) string {
	switch s {
	case constants.DayComplete:
		return completeStyle.Render
	case constants.DayPartial:
		return partialStyle.Render
	default:
		return incompleteStyle.Render
	}
}

func mark(done bool) string {
	if done {
		return markDone
	}
	return markOpen
}

// RenderDay formats one day as "Day N  date  ●●○  status". The three marks are
// medications, health metrics and education in that order.
func RenderDay(d models.DayRecord, todayKey string) string {
	style := statusStyle(d.Status)
	line := dayIndexStyle.Render(fmt.Sprintf("Day %d", d.DayIndex)) +
		dateStyle.Render(d.DateKey) +
		style(mark(d.MedicationsCompleted)+mark(d.HealthMetricsLogged)+mark(d.EducationCompleted)) +
		"  " + style(string(d.Status))
	if d.DateKey == todayKey {
		line += "  " + todayStyle.Render("today")
	}
	return line
}

// RenderTimeline renders days one per line in the order given.
func RenderTimeline(days []models.DayRecord, todayKey string) string {
	if len(days) == 0 {
		return incompleteStyle.Render("Your journey starts tomorrow.")
	}
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, RenderDay(d, todayKey))
	}
	return strings.Join(lines, "\n")
}

// RenderStreak summarizes a streak in one line.
func RenderStreak(info models.StreakInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current streak: %d", info.CurrentStreak)
	if info.CurrentStreak > 0 {
		fmt.Fprintf(&b, " (%s to %s)", info.StreakStartDate, info.StreakEndDate)
	}
	fmt.Fprintf(&b, "  Longest: %d", info.LongestStreak)

	switch {
	case info.IsToday && info.TodayCompleted:
		b.WriteString("  " + completeStyle.Render("today done"))
	case info.IsToday && info.StreakBeforeToday >= constants.StreakThreshold:
		b.WriteString("  " + partialStyle.Render(fmt.Sprintf("%d day streak at risk", info.StreakBeforeToday)))
	case info.IsToday:
		b.WriteString("  " + incompleteStyle.Render("today open"))
	}
	return summaryStyle.Render(b.String())
}

package streak

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

var journeyStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// buildDays creates one consecutive day per entry in counts, using the
// entry as the number of completed tasks for that day.
func buildDays(counts ...int) []models.DayRecord {
	days := make([]models.DayRecord, len(counts))
	for i, c := range counts {
		date := journeyStart.AddDate(0, 0, i)
		d := models.DayRecord{
			DayIndex:             i + 1,
			CalendarDate:         date,
			DateKey:              date.Format(constants.DateFormat),
			MedicationsCompleted: c >= 1,
			HealthMetricsLogged:  c >= 2,
			EducationCompleted:   c >= 3,
		}
		d.Finalize()
		days[i] = d
	}
	return days
}

func keyOf(days []models.DayRecord, dayIndex int) string {
	return days[dayIndex-1].DateKey
}

func TestCalculateEmpty(t *testing.T) {
	info := Calculate(nil, "2026-03-01")

	if info != (models.StreakInfo{}) {
		t.Errorf("Calculate(nil) = %+v, want zero value", info)
	}
}

func TestCalculateScenarios(t *testing.T) {
	tests := []struct {
		name        string
		counts      []int
		todayIndex  int // 0 means today is not in the sequence
		wantCurrent int
		wantLongest int
		wantOn      bool
		wantToday   bool
		wantTodayOK bool
	}{
		{
			name:        "first five complete then nothing",
			counts:      []int{3, 3, 3, 3, 3, 0, 0, 0, 0, 0},
			todayIndex:  10,
			wantCurrent: 0,
			wantLongest: 5,
			wantOn:      false,
			wantToday:   true,
			wantTodayOK: false,
		},
		{
			name:        "last three complete after mixed days",
			counts:      []int{3, 3, 1, 3, 0, 2, 0, 3, 3, 3},
			todayIndex:  10,
			wantCurrent: 3,
			wantLongest: 3,
			wantOn:      true,
			wantToday:   true,
			wantTodayOK: true,
		},
		{
			name:        "all complete",
			counts:      []int{3, 3, 3, 3},
			todayIndex:  4,
			wantCurrent: 4,
			wantLongest: 4,
			wantOn:      true,
			wantToday:   true,
			wantTodayOK: true,
		},
		{
			name:        "no complete days",
			counts:      []int{0, 1, 2, 1},
			todayIndex:  4,
			wantCurrent: 0,
			wantLongest: 0,
			wantOn:      false,
			wantToday:   true,
			wantTodayOK: false,
		},
		{
			name:        "today partial",
			counts:      []int{3, 3, 2},
			todayIndex:  3,
			wantCurrent: 0,
			wantLongest: 2,
			wantOn:      false,
			wantToday:   true,
			wantTodayOK: false,
		},
		{
			name:        "today absent",
			counts:      []int{3, 3},
			todayIndex:  0,
			wantCurrent: 2,
			wantLongest: 2,
			wantOn:      false,
			wantToday:   false,
			wantTodayOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := buildDays(tt.counts...)
			today := "2099-01-01"
			if tt.todayIndex > 0 {
				today = keyOf(days, tt.todayIndex)
			}

			info := Calculate(days, today)

			if info.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", info.CurrentStreak, tt.wantCurrent)
			}
			if info.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", info.LongestStreak, tt.wantLongest)
			}
			if info.IsOnStreak != tt.wantOn {
				t.Errorf("IsOnStreak = %v, want %v", info.IsOnStreak, tt.wantOn)
			}
			if info.IsToday != tt.wantToday {
				t.Errorf("IsToday = %v, want %v", info.IsToday, tt.wantToday)
			}
			if info.TodayCompleted != tt.wantTodayOK {
				t.Errorf("TodayCompleted = %v, want %v", info.TodayCompleted, tt.wantTodayOK)
			}
		})
	}
}

func TestCalculateStreakBounds(t *testing.T) {
	days := buildDays(0, 3, 1, 3, 3, 3)
	info := Calculate(days, keyOf(days, 6))

	if info.StreakStartDate != keyOf(days, 4) {
		t.Errorf("StreakStartDate = %s, want %s", info.StreakStartDate, keyOf(days, 4))
	}
	if info.StreakEndDate != keyOf(days, 6) {
		t.Errorf("StreakEndDate = %s, want %s", info.StreakEndDate, keyOf(days, 6))
	}

	broken := buildDays(3, 3, 0)
	info = Calculate(broken, keyOf(broken, 3))
	if info.StreakStartDate != "" || info.StreakEndDate != "" {
		t.Errorf("bounds should be empty when CurrentStreak is 0, got %q..%q", info.StreakStartDate, info.StreakEndDate)
	}
}

func TestCalculateStreakBeforeToday(t *testing.T) {
	days := buildDays(0, 3, 3, 3, 3, 1)
	info := Calculate(days, keyOf(days, 6))

	if info.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", info.CurrentStreak)
	}
	if info.StreakBeforeToday != 4 {
		t.Errorf("StreakBeforeToday = %d, want 4", info.StreakBeforeToday)
	}

	first := buildDays(2)
	if got := Calculate(first, keyOf(first, 1)).StreakBeforeToday; got != 0 {
		t.Errorf("StreakBeforeToday on day one = %d, want 0", got)
	}
}

func TestCalculateOrderIndependent(t *testing.T) {
	days := buildDays(3, 0, 3, 3, 3, 2, 3, 3)
	today := keyOf(days, 8)
	want := Calculate(days, today)

	reversed := make([]models.DayRecord, len(days))
	for i, d := range days {
		reversed[len(days)-1-i] = d
	}
	got := Calculate(reversed, today)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Calculate(reversed) = %+v, want %+v", got, want)
	}
	if reversed[0].DateKey != keyOf(days, 8) {
		t.Error("Calculate mutated its input")
	}
}

func TestCalculateIdempotent(t *testing.T) {
	days := buildDays(3, 3, 0, 3, 3, 3, 1)
	today := keyOf(days, 7)

	first := Calculate(days, today)
	second := Calculate(days, today)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Calculate is not idempotent: %+v vs %+v", first, second)
	}
}

func TestLongestAtLeastCurrent(t *testing.T) {
	// Every six-day sequence drawn from {0, 2, 3} completed tasks
	values := []int{0, 2, 3}
	var counts [6]int
	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(counts) {
			days := buildDays(counts[:]...)
			info := Calculate(days, days[len(days)-1].DateKey)
			if info.LongestStreak < info.CurrentStreak {
				t.Fatalf("counts %v: LongestStreak %d < CurrentStreak %d", counts, info.LongestStreak, info.CurrentStreak)
			}
			if info.IsOnStreak != (info.CurrentStreak >= constants.StreakThreshold) {
				t.Fatalf("counts %v: IsOnStreak inconsistent with CurrentStreak %d", counts, info.CurrentStreak)
			}
			return
		}
		for _, v := range values {
			counts[pos] = v
			walk(pos + 1)
		}
	}
	walk(0)
}

func ExampleCalculate() {
	days := buildDays(3, 3, 3, 1, 3, 3, 3)
	info := Calculate(days, days[len(days)-1].DateKey)
	fmt.Println(info.CurrentStreak, info.LongestStreak, info.IsOnStreak)
	// Output: 3 3 true
}

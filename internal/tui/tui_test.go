package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/journey"
	"github.com/julianstephens/heartline/internal/models"
)

func sampleDays() []models.DayRecord {
	days := []models.DayRecord{
		{DayIndex: 1, DateKey: "2026-03-02", MedicationsCompleted: true, HealthMetricsLogged: true, EducationCompleted: true},
		{DayIndex: 2, DateKey: "2026-03-03", MedicationsCompleted: true},
		{DayIndex: 3, DateKey: "2026-03-04"},
	}
	for i := range days {
		days[i].Finalize()
	}
	return days
}

func TestRenderTimeline(t *testing.T) {
	out := RenderTimeline(sampleDays(), "2026-03-04")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}

	tests := []struct {
		line  string
		parts []string
	}{
		{lines[0], []string{"Day 1", "2026-03-02", "●●●", "complete"}},
		{lines[1], []string{"Day 2", "2026-03-03", "●○○", "partial"}},
		{lines[2], []string{"Day 3", "2026-03-04", "○○○", "incomplete", "today"}},
	}
	for _, tt := range tests {
		for _, p := range tt.parts {
			if !strings.Contains(tt.line, p) {
				t.Errorf("line %q missing %q", tt.line, p)
			}
		}
	}
	if strings.Contains(lines[0], "today") {
		t.Error("only today's line should be marked")
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	if out := RenderTimeline(nil, "2026-03-04"); !strings.Contains(out, "starts tomorrow") {
		t.Errorf("RenderTimeline(nil) = %q", out)
	}
}

func TestRenderStreak(t *testing.T) {
	tests := []struct {
		name string
		info models.StreakInfo
		want []string
	}{
		{
			name: "active streak",
			info: models.StreakInfo{CurrentStreak: 4, LongestStreak: 6, StreakStartDate: "2026-03-01", StreakEndDate: "2026-03-04", IsToday: true, TodayCompleted: true},
			want: []string{"Current streak: 4", "2026-03-01 to 2026-03-04", "Longest: 6", "today done"},
		},
		{
			name: "at risk",
			info: models.StreakInfo{LongestStreak: 5, IsToday: true, StreakBeforeToday: 5},
			want: []string{"Current streak: 0", "5 day streak at risk"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderStreak(tt.info)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("RenderStreak() = %q, missing %q", out, w)
				}
			}
		})
	}
}

func TestModelLoadsJourney(t *testing.T) {
	j := &journey.Journey{IndexDate: "2026-03-01", Today: "2026-03-04", Days: sampleDays()}
	m := NewModel(func() (*journey.Journey, error) { return j, nil })

	msg := m.Init()()
	updated, _ := m.Update(msg)
	view := updated.(Model).View()

	for _, want := range []string{"Recovery journey", "since 2026-03-01", "2026-03-02"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModelShowsOnboardingPrompt(t *testing.T) {
	m := NewModel(func() (*journey.Journey, error) { return nil, apperrors.ErrNoIndexDate })
	updated, _ := m.Update(m.Init()())
	if view := updated.(Model).View(); !strings.Contains(view, "heartline onboard") {
		t.Errorf("View() = %q, want an onboarding prompt", view)
	}
}

func TestModelShowsReadError(t *testing.T) {
	readErr := &apperrors.ReadError{Source: journey.SourceMetrics, Err: errors.New("locked")}
	m := NewModel(func() (*journey.Journey, error) { return nil, readErr })
	updated, _ := m.Update(m.Init()())
	view := updated.(Model).View()
	if !strings.Contains(view, "health metrics") || !strings.Contains(view, "retry") {
		t.Errorf("View() = %q, want the failing source and a retry hint", view)
	}
}

func TestModelKeys(t *testing.T) {
	calls := 0
	m := NewModel(func() (*journey.Journey, error) {
		calls++
		return &journey.Journey{Days: []models.DayRecord{}}, nil
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("refresh key should return a load command")
	}
	cmd()
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should produce tea.QuitMsg")
	}
	if updated.(Model).View() != "" {
		t.Error("View() after quitting should be empty")
	}
}

func TestValidateIndexDate(t *testing.T) {
	today := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	validate := ValidateIndexDate(today)

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-04", false},
		{"2025-12-31", false},
		{"2026-03-05", true},
		{"03/04/2026", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := validate(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("ValidateIndexDate()(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestOnboardingFormData(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	f := &OnboardingForm{IndexEventDate: "2026-02-20", EventType: "pci", HasCardiacRehab: true, SmokingStatus: "former"}
	got := f.Data(now)
	want := models.OnboardingData{IndexEventDate: "2026-02-20", EventType: "pci", HasCardiacRehab: true, SmokingStatus: "former", CompletedAt: now}
	if got != want {
		t.Errorf("Data() = %+v, want %+v", got, want)
	}
	if NewOnboardingForm(f, now) == nil {
		t.Error("NewOnboardingForm() returned nil")
	}
}

// Package reminder decides which streak notification, if any, to show a patient.
package reminder

import (
	"context"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
)

// Notice is a notification ready for delivery.
type Notice struct {
	Kind      constants.NoticeKind
	PatientID string
	DateKey   string
	Streak    int
	Title     string
	Body      string
}

// Evaluate applies the notification rule with the default warning hour.
func Evaluate(info models.StreakInfo, now time.Time) (constants.NoticeKind, bool) {
	return EvaluateAt(info, now, constants.DefaultWarningHour)
}

// EvaluateAt returns the notice kind for info at now. An achievement needs a
// streak of at least three that includes a completed today. A warning needs
// today still open at or after warningHour while a streak is running or the
// run ending yesterday would reach the threshold. At most one kind applies.
func EvaluateAt(info models.StreakInfo, now time.Time, warningHour int) (constants.NoticeKind, bool) {
	if info.CurrentStreak >= constants.StreakThreshold && info.TodayCompleted {
		return constants.NoticeAchievement, true
	}
	atRisk := info.IsOnStreak || info.StreakBeforeToday >= constants.StreakThreshold
	if now.Hour() >= warningHour && info.IsToday && !info.TodayCompleted && atRisk {
		return constants.NoticeWarning, true
	}
	return "", false
}

// streakLength is the run a notice talks about: the live streak for an
// achievement, the streak that is about to break for a warning.
func streakLength(kind constants.NoticeKind, info models.StreakInfo) int {
	if kind == constants.NoticeWarning && info.StreakBeforeToday > info.CurrentStreak {
		return info.StreakBeforeToday
	}
	return info.CurrentStreak
}

type Policy struct {
	flags       storage.FlagStore
	catalog     *Catalog
	warningHour int
}

func NewPolicy(flags storage.FlagStore, catalog *Catalog, warningHour int) *Policy {
	if warningHour <= 0 || warningHour > 23 {
		warningHour = constants.DefaultWarningHour
	}
	return &Policy{flags: flags, catalog: catalog, warningHour: warningHour}
}

// Pending returns the notice due for patientID at now unless one of the same
// kind was already shown today. It does not mark anything.
func (p *Policy) Pending(ctx context.Context, patientID string, info models.StreakInfo, now time.Time) (*Notice, error) {
	kind, ok := EvaluateAt(info, now, p.warningHour)
	if !ok {
		return nil, nil
	}

	dateKey := now.Format(constants.DateFormat)
	shown, err := p.flags.IsFlagSet(ctx, storage.SuppressionKey(patientID, kind, dateKey))
	if err != nil {
		return nil, err
	}
	if shown {
		return nil, nil
	}

	n := streakLength(kind, info)
	return &Notice{
		Kind:      kind,
		PatientID: patientID,
		DateKey:   dateKey,
		Streak:    n,
		Title:     p.catalog.Title(kind),
		Body:      p.catalog.Body(kind, n),
	}, nil
}

// MarkShown suppresses further notices of n's kind for the rest of its day.
func (p *Policy) MarkShown(ctx context.Context, n *Notice) error {
	return p.flags.SetFlag(ctx, storage.SuppressionKey(n.PatientID, n.Kind, n.DateKey))
}

// Check returns the pending notice and marks it shown in one step.
func (p *Policy) Check(ctx context.Context, patientID string, info models.StreakInfo, now time.Time) (*Notice, error) {
	n, err := p.Pending(ctx, patientID, info, now)
	if err != nil || n == nil {
		return nil, err
	}
	if err := p.MarkShown(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

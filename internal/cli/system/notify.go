package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/notifier"
	"github.com/julianstephens/heartline/internal/reminder"
)

type NotifyCmd struct {
	DryRun bool `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	session, err := ctx.Session()
	if err != nil {
		return err
	}
	if !session.Settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Printf("Notifications are disabled in settings.\n")
		}
		return nil
	}

	now := session.Today(ctx.Now())
	j, err := ctx.ComputeJourneyAt(bg, session, now)
	if err != nil {
		return ctx.HandleJourneyError(err)
	}

	catalog, err := reminder.NewCatalog()
	if err != nil {
		return err
	}
	policy := reminder.NewPolicy(ctx.FlagStore(), catalog, session.Settings.WarningHour)

	notice, err := policy.Pending(bg, session.PatientID, j.Streak, now)
	if err != nil {
		return fmt.Errorf("failed to check notification flags: %w", err)
	}
	if notice == nil {
		if c.DryRun {
			ctx.Printf("Nothing to notify.\n")
		}
		return nil
	}

	if c.DryRun {
		ctx.Printf("[DRY RUN] %s: %s\n", notice.Title, notice.Body)
		return nil
	}

	if ctx.Notifier == nil {
		return errors.New("no notifier configured")
	}
	if err := ctx.Notifier.Notify(bg, notice.Title, notice.Body); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			// leave the flag unset so the next run retries
			logger.ForPatient(notice.PatientID).Warn("Notification not delivered", "kind", notice.Kind, "error", err)
			return nil
		}
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if err := policy.MarkShown(bg, notice); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	logger.ForPatient(notice.PatientID).Info("Notification sent", "kind", notice.Kind, "streak", notice.Streak)
	return nil
}

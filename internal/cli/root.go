package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/heartline/internal/backup"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/journey"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/profile"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/storage/sqlite"
	"github.com/julianstephens/heartline/internal/utils"
)

// Notifier delivers a notification to the user's desktop.
type Notifier interface {
	Notify(ctx context.Context, title, text string) error
}

type Context struct {
	Store storage.Provider
	// Flags overrides Store for notification suppression (e.g. Redis).
	Flags    storage.FlagStore
	Clock    utils.Clock
	Notifier Notifier
	// Patient overrides the default_patient setting when non-empty.
	Patient string
	Out     io.Writer
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *Context) FlagStore() storage.FlagStore {
	if c.Flags != nil {
		return c.Flags
	}
	return c.Store
}

// Session is the resolved per-command view of settings.
type Session struct {
	Settings  models.Settings
	Location  *time.Location
	PatientID string
}

// Today returns now in the session location.
func (s Session) Today(now time.Time) time.Time {
	return now.In(s.Location)
}

func (c *Context) Session() (Session, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return Session{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return Session{}, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	patient := c.Patient
	if patient == "" {
		patient = settings.DefaultPatient
	}
	return Session{Settings: settings, Location: loc, PatientID: patient}, nil
}

func (c *Context) Resolver() *profile.Resolver {
	return profile.NewResolver(c.Store, c.Store)
}

// ComputeJourney rebuilds the journey of the session patient as of now.
func (c *Context) ComputeJourney(ctx context.Context, s Session) (*journey.Journey, error) {
	return c.ComputeJourneyAt(ctx, s, c.Now())
}

// ComputeJourneyAt rebuilds the journey as of the given instant. Callers that
// also evaluate time-dependent rules pass the same instant to both.
func (c *Context) ComputeJourneyAt(ctx context.Context, s Session, now time.Time) (*journey.Journey, error) {
	svc := journey.NewService(c.Store, c.Resolver(), utils.FixedClock{Time: now}, s.Location)
	return svc.Compute(ctx, s.PatientID)
}

// HandleJourneyError turns journey failures into user-facing outcomes:
// a missing index date prints the onboarding prompt and is not an error.
func (c *Context) HandleJourneyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrNoIndexDate):
		c.Printf("No index event date on record.\n")
		c.Printf("Run 'heartline onboard' or 'heartline patient set --index-date YYYY-MM-DD' to start your journey.\n")
		return nil
	case apperrors.IsReadFailure(err):
		return fmt.Errorf("%w (nothing was changed, try again)", err)
	default:
		return err
	}
}

// ParseDay resolves a --date flag: empty or "today", "yesterday", or YYYY-MM-DD.
func ParseDay(value string, now time.Time, loc *time.Location) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return utils.DateKey(now, loc), nil
	case "yesterday":
		return utils.DateKey(utils.AddDays(utils.StartOfDay(now, loc), -1), loc), nil
	}
	if !utils.ValidateDateFormat(value) {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

// ParseInstant resolves an --at flag: empty means now, otherwise RFC3339 or
// "YYYY-MM-DD HH:MM" in loc.
func ParseInstant(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339 or \"YYYY-MM-DD HH:MM\")", value)
}

// PerformAutomaticBackup snapshots SQLite databases and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/tui"
)

// runForm is swapped out in tests.
var runForm = func(f *huh.Form) error { return f.Run() }

type OnboardCmd struct {
	IndexDate   string `help:"Date of the cardiac event (YYYY-MM-DD). Skips the questionnaire."`
	EventType   string `help:"Kind of event, e.g. myocardial_infarction, pci, cabg."`
	Rehab       bool   `help:"Enrolled in cardiac rehab."`
	Smoking     string `help:"Smoking status: never, former or current."`
	SaveProfile bool   `help:"Also write the answers to the patient profile."`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	today := session.Today(ctx.Now())

	answers := tui.OnboardingForm{
		IndexEventDate:  c.IndexDate,
		EventType:       c.EventType,
		HasCardiacRehab: c.Rehab,
		SmokingStatus:   c.Smoking,
		SaveProfile:     c.SaveProfile,
	}

	if c.IndexDate == "" {
		if err := runForm(tui.NewOnboardingForm(&answers, today)); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Printf("Onboarding cancelled.\n")
				return nil
			}
			return fmt.Errorf("onboarding failed: %w", err)
		}
	} else if err := tui.ValidateIndexDate(today)(c.IndexDate); err != nil {
		return fmt.Errorf("invalid index date %q: %w", c.IndexDate, err)
	}

	data := answers.Data(ctx.Now())
	if err := ctx.Resolver().SaveOnboarding(bg, data); err != nil {
		return fmt.Errorf("failed to cache onboarding answers: %w", err)
	}
	logger.ForPatient(session.PatientID).Info("Onboarding answers cached", "index_date", data.IndexEventDate)

	if answers.SaveProfile {
		profile := models.Profile{PatientID: session.PatientID, IndexEventDate: data.IndexEventDate}
		if err := ctx.Store.SaveProfile(bg, profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		ctx.Printf("✓ Profile saved for %s\n", session.PatientID)
	}

	ctx.Printf("✓ Your recovery journey starts the day after %s\n", data.IndexEventDate)
	return nil
}

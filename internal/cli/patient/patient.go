package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/tui"
)

type PatientSetCmd struct {
	IndexDate string `required:"" help:"Date of the cardiac event (YYYY-MM-DD)."`
	Name      string `help:"Display name of the patient."`
}

func (c *PatientSetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	if err := tui.ValidateIndexDate(session.Today(ctx.Now()))(c.IndexDate); err != nil {
		return fmt.Errorf("invalid index date %q: %w", c.IndexDate, err)
	}

	profile, err := ctx.Store.GetProfile(bg, session.PatientID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	profile.PatientID = session.PatientID
	profile.IndexEventDate = c.IndexDate
	if c.Name != "" {
		profile.Name = c.Name
	}

	if err := ctx.Store.SaveProfile(bg, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.Printf("✓ Index event date for %s set to %s\n", session.PatientID, c.IndexDate)
	return nil
}

type PatientShowCmd struct{}

func (c *PatientShowCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfile(bg, session.PatientID)
	switch {
	case err == nil:
		printProfile(ctx, profile)
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to load profile: %w", err)
	}

	data, err := ctx.Resolver().Onboarding(bg)
	if errors.Is(err, storage.ErrNotFound) {
		ctx.Printf("No profile for %s. Run 'heartline onboard' to create one.\n", session.PatientID)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Patient:           %s (onboarding answers on this device)\n", session.PatientID)
	printOnboarding(ctx, data)
	return nil
}

func printProfile(ctx *cli.Context, p models.Profile) {
	ctx.Printf("Patient:           %s\n", p.PatientID)
	if p.Name != "" {
		ctx.Printf("Name:              %s\n", p.Name)
	}
	ctx.Printf("Index event date:  %s\n", p.IndexEventDate)
}

func printOnboarding(ctx *cli.Context, d models.OnboardingData) {
	ctx.Printf("Index event date:  %s\n", d.IndexEventDate)
	if d.EventType != "" {
		ctx.Printf("Event type:        %s\n", d.EventType)
	}
	ctx.Printf("Cardiac rehab:     %v\n", d.HasCardiacRehab)
	if d.SmokingStatus != "" {
		ctx.Printf("Smoking status:    %s\n", d.SmokingStatus)
	}
	ctx.Printf("Completed at:      %s\n", d.CompletedAt.Format("2006-01-02 15:04"))
}

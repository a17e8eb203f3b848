package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

type MedLogCmd struct {
	Name         string `arg:"" help:"Medication name."`
	Status       string `help:"Intake status: taken, missed, delayed or scheduled." default:"taken" enum:"taken,missed,delayed,scheduled"`
	At           string `help:"When the dose was taken (RFC3339 or \"YYYY-MM-DD HH:MM\"). Defaults to now."`
	ScheduledFor string `help:"When the dose was due (RFC3339 or \"YYYY-MM-DD HH:MM\")."`
}

func (c *MedLogCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	now := ctx.Now()

	intake := models.MedicationIntake{
		ID:             uuid.New().String(),
		PatientID:      session.PatientID,
		MedicationName: c.Name,
		Status:         constants.IntakeStatus(c.Status),
		CreatedAt:      now,
	}

	if intake.Status == constants.IntakeTaken || c.At != "" {
		takenAt, err := cli.ParseInstant(c.At, now, session.Location)
		if err != nil {
			return err
		}
		intake.TakenAt = &takenAt
	}
	if c.ScheduledFor != "" {
		scheduled, err := cli.ParseInstant(c.ScheduledFor, now, session.Location)
		if err != nil {
			return err
		}
		intake.ScheduledFor = &scheduled
	}

	if err := ctx.Store.AddMedicationIntake(context.Background(), intake); err != nil {
		return fmt.Errorf("failed to log intake: %w", err)
	}
	ctx.Printf("✓ Logged %s as %s\n", intake.MedicationName, intake.Status)
	return nil
}

type MedListCmd struct {
	Limit int `help:"Number of intakes to show." default:"20"`
}

func (c *MedListCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	intakes, err := ctx.Store.GetMedicationIntakes(context.Background(), session.PatientID, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list intakes: %w", err)
	}
	if len(intakes) == 0 {
		ctx.Printf("No medication intakes logged.\n")
		return nil
	}
	for _, in := range intakes {
		when := "-"
		if in.TakenAt != nil {
			when = formatLocal(*in.TakenAt, session.Location)
		}
		ctx.Printf("%-16s  %-9s  %-20s  %s\n", when, in.Status, in.MedicationName, in.ID)
	}
	return nil
}

func formatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat + " " + constants.TimeFormat)
}

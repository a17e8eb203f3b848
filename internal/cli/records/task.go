package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
)

// TaskMarkCmd sets the explicit completion flags of one day. Flags that are
// not given keep their stored value.
type TaskMarkCmd struct {
	Date        string `help:"Day to mark: today, yesterday or YYYY-MM-DD." default:"today"`
	Medications *bool  `help:"Medications taken."`
	Health      *bool  `help:"Health metrics logged."`
	Education   *bool  `help:"Education module completed."`
	All         bool   `help:"Mark all three tasks complete."`
}

func (c *TaskMarkCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, ctx.Now(), session.Location)
	if err != nil {
		return err
	}

	task, err := ctx.Store.GetDailyTask(bg, session.PatientID, day)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load tasks for %s: %w", day, err)
	}
	task.PatientID = session.PatientID
	task.Day = day

	changed := false
	apply := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
			changed = true
		}
	}
	if c.All {
		yes := true
		apply(&task.Medications, &yes)
		apply(&task.Health, &yes)
		apply(&task.Education, &yes)
	}
	apply(&task.Medications, c.Medications)
	apply(&task.Health, c.Health)
	apply(&task.Education, c.Education)

	if !changed {
		return errors.New("nothing to mark: pass --medications, --health, --education or --all")
	}

	task.UpdatedAt = ctx.Now()
	if err := ctx.Store.SaveDailyTask(bg, task); err != nil {
		return fmt.Errorf("failed to save tasks for %s: %w", day, err)
	}
	ctx.Printf("✓ %s\n", describeTask(task))
	return nil
}

type TaskShowCmd struct {
	Date string `help:"Day to show: today, yesterday or YYYY-MM-DD." default:"today"`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, ctx.Now(), session.Location)
	if err != nil {
		return err
	}

	task, err := ctx.Store.GetDailyTask(context.Background(), session.PatientID, day)
	if errors.Is(err, storage.ErrNotFound) {
		ctx.Printf("No tasks marked for %s.\n", day)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load tasks for %s: %w", day, err)
	}
	ctx.Printf("%s\n", describeTask(task))
	return nil
}

func describeTask(t models.DailyTask) string {
	check := func(b bool) string {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	return fmt.Sprintf("%s  %s medications  %s health  %s education",
		t.Day, check(t.Medications), check(t.Health), check(t.Education))
}

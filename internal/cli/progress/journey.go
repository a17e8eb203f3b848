package progress

import (
	"context"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/tui"
)

type JourneyCmd struct {
	Last int `help:"Show only the most recent N days (0 shows all)." default:"14"`
}

func (c *JourneyCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	j, err := ctx.ComputeJourney(context.Background(), session)
	if err != nil {
		return ctx.HandleJourneyError(err)
	}

	days := j.Days
	if c.Last > 0 && len(days) > c.Last {
		days = days[len(days)-c.Last:]
	}

	ctx.Printf("Recovery journey of %s since %s\n\n", j.PatientID, j.IndexDate)
	ctx.Printf("%s\n\n", tui.RenderTimeline(days, j.Today))
	ctx.Printf("%s\n", tui.RenderStreak(j.Streak))
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	j, err := ctx.ComputeJourney(context.Background(), session)
	if err != nil {
		return ctx.HandleJourneyError(err)
	}
	ctx.Printf("%s\n", tui.RenderStreak(j.Streak))
	return nil
}

package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/journey"
	"github.com/julianstephens/heartline/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	load := func() (*journey.Journey, error) {
		return ctx.ComputeJourney(context.Background(), session)
	}

	p := tea.NewProgram(tui.NewModel(load), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("journey viewer failed: %w", err)
	}
	return nil
}

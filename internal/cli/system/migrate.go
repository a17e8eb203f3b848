package system

import (
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
)

type migrator interface {
	Migrate(logFn func(string)) error
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	defer ctx.Store.Close()

	if err := m.Migrate(func(msg string) { ctx.Printf("%s\n", msg) }); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

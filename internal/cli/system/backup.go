package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/heartline/internal/backup"
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/storage/sqlite"
)

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	m, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	m, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := m.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		ctx.Printf("No backups found in %s\n", m.Dir())
		return nil
	}
	ctx.Printf("Backups in %s:\n", m.Dir())
	for _, b := range backups {
		ctx.Printf("  %s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Path of the backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	m, err := backupManager(ctx)
	if err != nil {
		return err
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}
	// the live connection must be released before the file is replaced
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	previous, err := m.Restore(c.Path)
	if err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	ctx.Printf("✓ Restored %s\n", c.Path)
	if previous != "" {
		ctx.Printf("  Previous database saved as %s\n", previous)
	}
	return nil
}

package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/storage/sqlite"
)

func setupUninitialized(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, dbPath, &out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := setupUninitialized(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if !strings.Contains(out.String(), dbPath) {
		t.Errorf("output = %q, want the database path", out.String())
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _, _ := setupUninitialized(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	settings, _ := ctx.Store.GetSettings()
	settings.DefaultPatient = "someone-else"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.DefaultPatient == "someone-else" {
		t.Error("--force should reset the database")
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, _, out := setupUninitialized(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("output = %q, want an up-to-date message", out.String())
	}
}

package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER PRIMARY KEY);")},
		"README.md":      {Data: []byte("ignored")},
	}
	runner := NewRunner(db, migrations)

	var logs []string
	applied, err := runner.Apply(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("Apply() applied = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", version)
	}
	if len(logs) == 0 {
		t.Error("expected progress log lines")
	}

	// Second run is a no-op
	applied, err = runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply() applied = %d, want 0", applied)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() error = %v", err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE oops (")},
	})

	applied, err := runner.Apply(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	version, _ := runner.CurrentVersion()
	if version != 1 {
		t.Errorf("CurrentVersion() = %d, want 1 after failed second migration", version)
	}
}

func TestMigrationsRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"no underscore", fstest.MapFS{"001.sql": {Data: []byte("")}}},
		{"non numeric", fstest.MapFS{"abc_init.sql": {Data: []byte("")}}},
		{"zero version", fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{"duplicate", fstest.MapFS{"001_a.sql": {Data: []byte("")}, "1_b.sql": {Data: []byte("")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(openTestDB(t), tt.fs)
			if _, err := runner.Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{"001_init.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")}}
	runner := NewRunner(db, fsys)

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "migrate") {
		t.Errorf("ValidateVersion() on fresh db = %v, want migrate hint", err)
	}

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}
	err = runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("ValidateVersion() = %v, want newer-version error", err)
	}
}

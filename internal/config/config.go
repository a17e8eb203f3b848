// Package config resolves where heartline keeps its data.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/keyring"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/storage/postgres"
	"github.com/julianstephens/heartline/internal/storage/sqlite"
)

// Where a connection string came from
const (
	SourceFlag    = "flag"
	SourceEnv     = "environment"
	SourceKeyring = "keyring"
	SourceDefault = "default"
)

var getConnectionString = keyring.GetConnectionString

// Connection is a resolved storage location.
type Connection struct {
	Value  string
	Source string
}

func (c Connection) IsPostgres() bool {
	return postgres.IsConnString(c.Value)
}

// LoadEnv reads KEY=VALUE pairs from the given .env files (default ./.env)
// without overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Resolve picks the storage location: an explicit --config value, then
// HEARTLINE_DB_CONNECTION, then the connection string saved in the OS keyring,
// then the default SQLite path.
func Resolve(flagValue string) (Connection, error) {
	conn := resolve(flagValue)

	if conn.IsPostgres() {
		if _, err := postgres.ValidateConnString(conn.Value); err != nil {
			// the keyring is encrypted so a password there is acceptable
			if !(errors.Is(err, postgres.ErrEmbeddedCredentials) && conn.Source == SourceKeyring) {
				return Connection{}, embeddedCredentialsHint(err)
			}
		}
	}
	return conn, nil
}

func resolve(flagValue string) Connection {
	if flagValue != "" && flagValue != constants.DefaultConfigPath {
		return Connection{Value: flagValue, Source: SourceFlag}
	}
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		return Connection{Value: env, Source: SourceEnv}
	}
	if stored, err := getConnectionString(); err == nil && stored != "" {
		return Connection{Value: stored, Source: SourceKeyring}
	} else if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return Connection{Value: constants.DefaultConfigPath, Source: SourceDefault}
}

func embeddedCredentialsHint(err error) error {
	if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	return fmt.Errorf("%w; store it with 'heartline keyring set', use ~/.pgpass, or set PGPASSWORD", err)
}

// NewProvider returns the storage backend for conn without opening it.
func NewProvider(conn Connection) storage.Provider {
	if conn.IsPostgres() {
		return postgres.New(conn.Value)
	}
	return sqlite.NewStore(conn.Value)
}

// LogDir is the directory that holds heartline's log files for conn.
func LogDir(conn Connection) string {
	if !conn.IsPostgres() {
		return filepath.Dir(sqlite.NewStore(conn.Value).GetConfigPath())
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(dir, constants.AppName)
}

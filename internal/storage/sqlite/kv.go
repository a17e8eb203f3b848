package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM local_kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	return value, err
}

func (s *Store) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, utils.FormatTimestamp(time.Now()))
	return err
}

func (s *Store) IsFlagSet(ctx context.Context, key string) (bool, error) {
	_, err := s.GetValue(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) SetFlag(ctx context.Context, key string) error {
	return s.SetValue(ctx, key, "true")
}

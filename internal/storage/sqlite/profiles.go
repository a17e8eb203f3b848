package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) GetProfile(ctx context.Context, patientID string) (models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT patient_id, name, index_event_date, created_at, updated_at
		FROM profiles WHERE patient_id = ?`, patientID)

	var p models.Profile
	var createdAt, updatedAt string
	if err := row.Scan(&p.PatientID, &p.Name, &p.IndexEventDate, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, err
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (patient_id, name, index_event_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(patient_id) DO UPDATE SET
			name = excluded.name,
			index_event_date = excluded.index_event_date,
			updated_at = excluded.updated_at`,
		p.PatientID, p.Name, p.IndexEventDate,
		utils.FormatTimestamp(p.CreatedAt), utils.FormatTimestamp(p.UpdatedAt),
	)
	return err
}

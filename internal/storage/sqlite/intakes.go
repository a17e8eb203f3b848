package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) AddMedicationIntake(ctx context.Context, m models.MedicationIntake) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO medication_intakes (id, patient_id, medication_name, status, scheduled_for, taken_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PatientID, m.MedicationName, string(m.Status),
		nullTime(m.ScheduledFor), nullTime(m.TakenAt), utils.FormatTimestamp(m.CreatedAt),
	)
	return err
}

func (s *Store) GetTakenIntakes(ctx context.Context, patientID string) ([]models.MedicationIntake, error) {
	return s.queryIntakes(ctx, `
		SELECT id, patient_id, medication_name, status, scheduled_for, taken_at, created_at
		FROM medication_intakes WHERE patient_id = ? AND status = ? AND taken_at IS NOT NULL
		ORDER BY taken_at`, patientID, string(constants.IntakeTaken))
}

func (s *Store) GetMedicationIntakes(ctx context.Context, patientID string, limit int) ([]models.MedicationIntake, error) {
	query := `
		SELECT id, patient_id, medication_name, status, scheduled_for, taken_at, created_at
		FROM medication_intakes WHERE patient_id = ?
		ORDER BY created_at DESC`
	args := []interface{}{patientID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryIntakes(ctx, query, args...)
}

// queryIntakes scans intake rows, skipping any whose timestamps cannot be parsed.
func (s *Store) queryIntakes(ctx context.Context, query string, args ...interface{}) ([]models.MedicationIntake, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intakes []models.MedicationIntake
	for rows.Next() {
		var m models.MedicationIntake
		var status, createdAt string
		var scheduledFor, takenAt sql.NullString
		if err := rows.Scan(&m.ID, &m.PatientID, &m.MedicationName, &status, &scheduledFor, &takenAt, &createdAt); err != nil {
			return nil, err
		}
		m.Status = constants.IntakeStatus(status)

		if m.TakenAt, err = parseNullTime(takenAt); err != nil {
			logger.Warn("Skipping medication intake with malformed taken_at", "id", m.ID, "error", err)
			continue
		}
		if m.ScheduledFor, err = parseNullTime(scheduledFor); err != nil {
			logger.Warn("Ignoring malformed scheduled_for", "id", m.ID, "error", err)
		}
		m.CreatedAt, _ = utils.ParseTimestamp(createdAt)
		intakes = append(intakes, m)
	}
	return intakes, rows.Err()
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: utils.FormatTimestamp(*t), Valid: true}
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := utils.ParseTimestamp(ns.String)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", ns.String, err)
	}
	return &t, nil
}

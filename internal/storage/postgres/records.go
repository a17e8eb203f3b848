package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) GetProfile(ctx context.Context, patientID string) (models.Profile, error) {
	var p models.Profile
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT patient_id, name, index_event_date, created_at, updated_at
		FROM profiles WHERE patient_id = $1`, patientID).
		Scan(&p.PatientID, &p.Name, &p.IndexEventDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}
	p.CreatedAt, _ = utils.ParseTimestamp(createdAt)
	p.UpdatedAt, _ = utils.ParseTimestamp(updatedAt)
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
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (patient_id, name, index_event_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (patient_id) DO UPDATE SET
			name = EXCLUDED.name,
			index_event_date = EXCLUDED.index_event_date,
			updated_at = EXCLUDED.updated_at`,
		p.PatientID, p.Name, p.IndexEventDate,
		utils.FormatTimestamp(p.CreatedAt), utils.FormatTimestamp(now))
	return err
}

func (s *Store) GetDailyTask(ctx context.Context, patientID, day string) (models.DailyTask, error) {
	var t models.DailyTask
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT patient_id, day, medications, health, education, updated_at
		FROM daily_tasks WHERE patient_id = $1 AND day = $2`, patientID, day).
		Scan(&t.PatientID, &t.Day, &t.Medications, &t.Health, &t.Education, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyTask{}, storage.ErrNotFound
	}
	if err != nil {
		return models.DailyTask{}, err
	}
	t.UpdatedAt, _ = utils.ParseTimestamp(updatedAt)
	return t, nil
}

func (s *Store) GetDailyTasks(ctx context.Context, patientID, startDay, endDay string) ([]models.DailyTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT patient_id, day, medications, health, education, updated_at
		FROM daily_tasks WHERE patient_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`, patientID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.DailyTask
	for rows.Next() {
		var t models.DailyTask
		var updatedAt string
		if err := rows.Scan(&t.PatientID, &t.Day, &t.Medications, &t.Health, &t.Education, &updatedAt); err != nil {
			return nil, err
		}
		if !utils.ValidateDateFormat(t.Day) {
			logger.Warn("Skipping daily task with malformed day", "patient", patientID, "day", t.Day)
			continue
		}
		t.UpdatedAt, _ = utils.ParseTimestamp(updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) SaveDailyTask(ctx context.Context, t models.DailyTask) error {
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_tasks (patient_id, day, medications, health, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id, day) DO UPDATE SET
			medications = EXCLUDED.medications,
			health = EXCLUDED.health,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at`,
		t.PatientID, t.Day, t.Medications, t.Health, t.Education, utils.FormatTimestamp(t.UpdatedAt))
	return err
}

func (s *Store) AddMedicationIntake(ctx context.Context, m models.MedicationIntake) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO medication_intakes (id, patient_id, medication_name, status, scheduled_for, taken_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.PatientID, m.MedicationName, string(m.Status),
		formatOptional(m.ScheduledFor), formatOptional(m.TakenAt), utils.FormatTimestamp(m.CreatedAt))
	return err
}

func (s *Store) GetTakenIntakes(ctx context.Context, patientID string) ([]models.MedicationIntake, error) {
	return s.queryIntakes(ctx, `
		SELECT id, patient_id, medication_name, status, scheduled_for, taken_at, created_at
		FROM medication_intakes WHERE patient_id = $1 AND status = $2 AND taken_at IS NOT NULL
		ORDER BY taken_at`, patientID, string(constants.IntakeTaken))
}

func (s *Store) GetMedicationIntakes(ctx context.Context, patientID string, limit int) ([]models.MedicationIntake, error) {
	query := `
		SELECT id, patient_id, medication_name, status, scheduled_for, taken_at, created_at
		FROM medication_intakes WHERE patient_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{patientID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return s.queryIntakes(ctx, query, args...)
}

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
		if m.TakenAt, err = parseOptional(takenAt); err != nil {
			logger.Warn("Skipping medication intake with malformed taken_at", "id", m.ID, "error", err)
			continue
		}
		if m.ScheduledFor, err = parseOptional(scheduledFor); err != nil {
			logger.Warn("Ignoring malformed scheduled_for", "id", m.ID, "error", err)
		}
		m.CreatedAt, _ = utils.ParseTimestamp(createdAt)
		intakes = append(intakes, m)
	}
	return intakes, rows.Err()
}

func (s *Store) AddHealthMetric(ctx context.Context, h models.HealthMetric) error {
	if err := h.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO health_metrics (id, patient_id, metric_type, value, unit, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.PatientID, h.MetricType, h.Value, h.Unit, utils.FormatTimestamp(h.RecordedAt))
	return err
}

func (s *Store) GetHealthMetrics(ctx context.Context, patientID string, limit int) ([]models.HealthMetric, error) {
	query := `
		SELECT id, patient_id, metric_type, value, unit, recorded_at
		FROM health_metrics WHERE patient_id = $1
		ORDER BY recorded_at DESC`
	args := []interface{}{patientID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []models.HealthMetric
	for rows.Next() {
		var h models.HealthMetric
		var recordedAt string
		if err := rows.Scan(&h.ID, &h.PatientID, &h.MetricType, &h.Value, &h.Unit, &recordedAt); err != nil {
			return nil, err
		}
		if h.RecordedAt, err = utils.ParseTimestamp(recordedAt); err != nil {
			logger.Warn("Skipping health metric with malformed recorded_at", "id", h.ID, "error", err)
			continue
		}
		metrics = append(metrics, h)
	}
	return metrics, rows.Err()
}

func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM local_kv WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	return value, err
}

func (s *Store) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_kv (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, utils.FormatTimestamp(time.Now()))
	return err
}

func (s *Store) IsFlagSet(ctx context.Context, key string) (bool, error) {
	_, err := s.GetValue(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *Store) SetFlag(ctx context.Context, key string) error {
	return s.SetValue(ctx, key, "true")
}

func formatOptional(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: utils.FormatTimestamp(*t), Valid: true}
}

func parseOptional(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := utils.ParseTimestamp(ns.String)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", ns.String, err)
	}
	return &t, nil
}

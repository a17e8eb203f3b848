package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) GetDailyTask(ctx context.Context, patientID, day string) (models.DailyTask, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT patient_id, day, medications, health, education, updated_at
		FROM daily_tasks WHERE patient_id = ? AND day = ?`, patientID, day)

	var t models.DailyTask
	var updatedAt string
	if err := row.Scan(&t.PatientID, &t.Day, &t.Medications, &t.Health, &t.Education, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyTask{}, storage.ErrNotFound
		}
		return models.DailyTask{}, err
	}
	t.UpdatedAt, _ = utils.ParseTimestamp(updatedAt)
	return t, nil
}

func (s *Store) GetDailyTasks(ctx context.Context, patientID, startDay, endDay string) ([]models.DailyTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT patient_id, day, medications, health, education, updated_at
		FROM daily_tasks WHERE patient_id = ? AND day >= ? AND day <= ?
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
		// updated_at is informational only; a bad value does not invalidate the flags
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
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(patient_id, day) DO UPDATE SET
			medications = excluded.medications,
			health = excluded.health,
			education = excluded.education,
			updated_at = excluded.updated_at`,
		t.PatientID, t.Day, t.Medications, t.Health, t.Education, utils.FormatTimestamp(t.UpdatedAt),
	)
	return err
}

package sqlite

import (
	"context"

	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

func (s *Store) AddHealthMetric(ctx context.Context, h models.HealthMetric) error {
	if err := h.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO health_metrics (id, patient_id, metric_type, value, unit, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.PatientID, h.MetricType, h.Value, h.Unit, utils.FormatTimestamp(h.RecordedAt),
	)
	return err
}

func (s *Store) GetHealthMetrics(ctx context.Context, patientID string, limit int) ([]models.HealthMetric, error) {
	query := `
		SELECT id, patient_id, metric_type, value, unit, recorded_at
		FROM health_metrics WHERE patient_id = ?
		ORDER BY recorded_at DESC`
	args := []interface{}{patientID}
	if limit > 0 {
		query += " LIMIT ?"
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

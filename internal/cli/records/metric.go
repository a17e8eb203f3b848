package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
)

type MetricLogCmd struct {
	Type  string `arg:"" help:"Metric type, e.g. blood_pressure, heart_rate, weight."`
	Value string `arg:"" help:"Measured value, e.g. 120/80."`
	Unit  string `help:"Unit of the value, e.g. mmHg."`
	At    string `help:"When it was measured (RFC3339 or \"YYYY-MM-DD HH:MM\"). Defaults to now."`
}

func (c *MetricLogCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	recordedAt, err := cli.ParseInstant(c.At, ctx.Now(), session.Location)
	if err != nil {
		return err
	}

	metric := models.HealthMetric{
		ID:         uuid.New().String(),
		PatientID:  session.PatientID,
		MetricType: c.Type,
		Value:      c.Value,
		Unit:       c.Unit,
		RecordedAt: recordedAt,
	}
	if err := ctx.Store.AddHealthMetric(context.Background(), metric); err != nil {
		return fmt.Errorf("failed to log metric: %w", err)
	}
	ctx.Printf("✓ Logged %s %s%s\n", metric.MetricType, metric.Value, unitSuffix(metric.Unit))
	return nil
}

type MetricListCmd struct {
	Limit int `help:"Number of metrics to show." default:"20"`
}

func (c *MetricListCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	metrics, err := ctx.Store.GetHealthMetrics(context.Background(), session.PatientID, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list metrics: %w", err)
	}
	if len(metrics) == 0 {
		ctx.Printf("No health metrics logged.\n")
		return nil
	}
	for _, m := range metrics {
		ctx.Printf("%-16s  %-16s  %s%s\n", formatLocal(m.RecordedAt, session.Location), m.MetricType, m.Value, unitSuffix(m.Unit))
	}
	return nil
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}

package journey

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/streak"
	"github.com/julianstephens/heartline/internal/utils"
)

// Names of the data sources reported in read errors
const (
	SourceDailyTasks = "daily tasks"
	SourceIntakes    = "medication intakes"
	SourceMetrics    = "health metrics"
)

// Sources is the read side of the journey data stores.
type Sources interface {
	GetDailyTasks(ctx context.Context, patientID, startDay, endDay string) ([]models.DailyTask, error)
	GetTakenIntakes(ctx context.Context, patientID string) ([]models.MedicationIntake, error)
	GetHealthMetrics(ctx context.Context, patientID string, limit int) ([]models.HealthMetric, error)
}

// IndexDateResolver looks up the index event date (YYYY-MM-DD) of a patient.
type IndexDateResolver interface {
	IndexDate(ctx context.Context, patientID string) (string, error)
}

// Journey is the computed timeline of one patient as of Today.
type Journey struct {
	PatientID string
	IndexDate string
	Today     string
	Days      []models.DayRecord
	Streak    models.StreakInfo
}

type Service struct {
	sources  Sources
	resolver IndexDateResolver
	clock    utils.Clock
	loc      *time.Location
}

func NewService(sources Sources, resolver IndexDateResolver, clock utils.Clock, loc *time.Location) *Service {
	if clock == nil {
		clock = utils.RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{sources: sources, resolver: resolver, clock: clock, loc: loc}
}

// Compute loads everything for patientID and rebuilds the journey and its
// streak summary. The three source reads run concurrently; if any fails the
// whole computation fails with an *errors.ReadError and no partial journey.
func (s *Service) Compute(ctx context.Context, patientID string) (*Journey, error) {
	indexKey, err := s.resolver.IndexDate(ctx, patientID)
	if err != nil {
		return nil, err
	}
	indexDate, err := utils.ParseDateInLocation(indexKey, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid index event date %q: %w", indexKey, err)
	}

	now := s.clock.Now().In(s.loc)
	j := &Journey{
		PatientID: patientID,
		IndexDate: indexKey,
		Today:     utils.DateKey(now, s.loc),
	}

	start, total := Span(indexDate, now, s.loc)
	if total == 0 {
		j.Days = []models.DayRecord{}
		return j, nil
	}

	data, err := s.load(ctx, patientID, start.Format(constants.DateFormat), j.Today)
	if err != nil {
		return nil, err
	}

	j.Days = Materialize(indexDate, now, s.loc, data)
	j.Streak = streak.Calculate(j.Days, j.Today)
	logger.Debug("Computed journey", "patient", patientID, "days", len(j.Days), "current_streak", j.Streak.CurrentStreak)
	return j, nil
}

func (s *Service) load(ctx context.Context, patientID, startKey, endKey string) (Data, error) {
	var data Data
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := s.sources.GetDailyTasks(gctx, patientID, startKey, endKey)
		if err != nil {
			return &apperrors.ReadError{Source: SourceDailyTasks, Err: err}
		}
		data.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		intakes, err := s.sources.GetTakenIntakes(gctx, patientID)
		if err != nil {
			return &apperrors.ReadError{Source: SourceIntakes, Err: err}
		}
		data.Intakes = intakes
		return nil
	})
	g.Go(func() error {
		metrics, err := s.sources.GetHealthMetrics(gctx, patientID, 0)
		if err != nil {
			return &apperrors.ReadError{Source: SourceMetrics, Err: err}
		}
		data.Metrics = metrics
		return nil
	})

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return data, nil
}

package providers

import (
	"context"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// instrumentedSource wraps a DataSource with metrics, logging and FetchError normalization.
// It never retries: a failed call is reported once and returned to the caller.
type instrumentedSource struct {
	inner      DataSource
	logger     *slog.Logger
	metrics    *metrics.Recorder
	sourceName string
	now        func() time.Time
}

// NewInstrumentedSource wraps inner so every call is timed, counted and logged.
func NewInstrumentedSource(inner DataSource, logger *slog.Logger, recorder *metrics.Recorder, sourceName string) DataSource {
	if sourceName == "" {
		sourceName = "unknown"
	}
	return &instrumentedSource{
		inner:      inner,
		logger:     logger,
		metrics:    recorder,
		sourceName: sourceName,
		now:        time.Now,
	}
}

func (s *instrumentedSource) FetchSchedule(ctx context.Context) (domaingames.Schedule, error) {
	if s.inner == nil {
		return domaingames.Schedule{}, s.unavailable(ctx, OpSchedule)
	}
	start := s.now()
	sched, err := s.inner.FetchSchedule(ctx)
	err = s.observe(ctx, OpSchedule, start, err, slog.Int("dates", len(sched.Dates)))
	return sched, err
}

func (s *instrumentedSource) FetchGamesForDate(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error) {
	if s.inner == nil {
		return nil, s.unavailable(ctx, OpGamesForDate)
	}
	start := s.now()
	list, err := s.inner.FetchGamesForDate(ctx, day)
	err = s.observe(ctx, OpGamesForDate, start, err,
		slog.String(logging.FieldDate, day.String()),
		slog.Int(logging.FieldCount, len(list)),
	)
	return list, err
}

func (s *instrumentedSource) FetchGameStats(ctx context.Context, gameID string) (stats.BoxScore, error) {
	if s.inner == nil {
		return stats.BoxScore{}, s.unavailable(ctx, OpGameStats)
	}
	start := s.now()
	box, err := s.inner.FetchGameStats(ctx, gameID)
	err = s.observe(ctx, OpGameStats, start, err, slog.String(logging.FieldGameID, gameID))
	return box, err
}

func (s *instrumentedSource) observe(ctx context.Context, op string, start time.Time, err error, attrs ...any) error {
	duration := s.now().Sub(start)
	s.metrics.RecordSourceAttempt(op, duration, err)

	attrs = append(attrs,
		slog.String(logging.FieldOperation, op),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	if err != nil {
		attrs = append(attrs, "error", err)
		logWithSource(ctx, s.logger, slog.LevelWarn, s.sourceName, "source fetch failed", attrs...)
		return NewFetchError(s.sourceName, op, 0, err)
	}
	logWithSource(ctx, s.logger, slog.LevelDebug, s.sourceName, "source fetch complete", attrs...)
	return nil
}

func (s *instrumentedSource) unavailable(ctx context.Context, op string) error {
	logWithSource(ctx, s.logger, slog.LevelWarn, s.sourceName, "source unavailable", slog.String(logging.FieldOperation, op))
	return &FetchError{Source: s.sourceName, Op: op, Err: ErrSourceUnavailable}
}

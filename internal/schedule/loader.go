package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
)

// Result is the outcome of one schedule load. Index is never nil; on failure it is
// empty and Err carries the FetchError.
type Result struct {
	Index *Index
	Err   error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Loader fetches the schedule and builds the index. It performs exactly one fetch
// per Load call.
type Loader struct {
	Source   providers.ScheduleSource
	Location *time.Location
	Logger   *slog.Logger
}

// Load fetches and indexes the schedule. Failures are returned in the Result, never
// as a panic or a partially built index.
func (l Loader) Load(ctx context.Context) Result {
	if l.Source == nil {
		err := &providers.FetchError{Op: providers.OpSchedule, Err: providers.ErrSourceUnavailable}
		logging.Error(l.Logger, "schedule load failed", err)
		return Result{Index: Empty(), Err: err}
	}

	sched, err := l.Source.FetchSchedule(ctx)
	if err != nil {
		err = providers.NewFetchError("", providers.OpSchedule, 0, err)
		logging.Error(l.Logger, "schedule load failed", err)
		return Result{Index: Empty(), Err: err}
	}

	idx := Build(sched, l.Location)
	logging.Info(l.Logger, "schedule loaded",
		logging.FieldCount, idx.Len(),
		"days", len(idx.days),
	)
	return Result{Index: idx}
}

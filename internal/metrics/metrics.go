package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type batchStats struct {
	batches      int
	games        int
	stale        int
	byStatus     map[string]int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about source calls and stats batches,
// mirroring them into OpenTelemetry instruments when configured.
type Recorder struct {
	mu      sync.Mutex
	sources map[string]*sourceStats
	batch   batchStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		batch:   batchStats{byStatus: make(map[string]int)},
		otel:    otel,
	}
}

// RecordSourceAttempt counts one data source call for an operation (schedule, games_for_date, game_stats).
func (r *Recorder) RecordSourceAttempt(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.sources[operation]
	if !ok {
		stats = &sourceStats{}
		r.sources[operation] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSourceAttempt(operation, duration, err)
	}
}

// RecordStatsBatch tracks a settled stats fan-out and its per-status breakdown.
func (r *Recorder) RecordStatsBatch(duration time.Duration, byStatus map[string]int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.batch.batches++
	r.batch.lastDuration = duration
	for status, n := range byStatus {
		r.batch.games += n
		r.batch.byStatus[status] += n
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStatsBatch(duration, byStatus)
	}
}

// RecordStaleBatch counts a batch whose results were dropped because a newer selection won.
func (r *Recorder) RecordStaleBatch() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.batch.stale++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStaleBatch()
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// SourceSnapshot is a copy of the stats for one source operation.
type SourceSnapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

// Source returns a copy of the current stats for the operation.
func (r *Recorder) Source(operation string) SourceSnapshot {
	if r == nil {
		return SourceSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[operation]
	if !ok || stats == nil {
		return SourceSnapshot{}
	}
	return SourceSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// BatchSnapshot is a copy of the aggregated stats batch counters.
type BatchSnapshot struct {
	Batches      int
	Games        int
	Stale        int
	ByStatus     map[string]int
	LastDuration time.Duration
}

// Batches returns a copy of the stats batch counters.
func (r *Recorder) Batches() BatchSnapshot {
	if r == nil {
		return BatchSnapshot{ByStatus: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	byStatus := make(map[string]int, len(r.batch.byStatus))
	for k, v := range r.batch.byStatus {
		byStatus[k] = v
	}
	return BatchSnapshot{
		Batches:      r.batch.batches,
		Games:        r.batch.games,
		Stale:        r.batch.stale,
		ByStatus:     byStatus,
		LastDuration: r.batch.lastDuration,
	}
}

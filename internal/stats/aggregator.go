package stats

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
)

// DefaultConcurrency leaves a batch unbounded: every game's request is issued at once.
const DefaultConcurrency = 0

// Result is one settled stats batch. Statuses and Scores carry an entry for every
// game in the batch; BoxScores only for games whose request succeeded.
type Result struct {
	Statuses  map[string]domainstats.Status
	Scores    map[string]domainstats.Snapshot
	BoxScores map[string]domainstats.BoxScore
}

// Counts tallies statuses for metrics and logging.
func (r Result) Counts() map[string]int {
	out := make(map[string]int, 3)
	for _, s := range r.Statuses {
		out[string(s)]++
	}
	return out
}

// Aggregator fans out one box score request per game and classifies each result.
type Aggregator struct {
	source      providers.StatsSource
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

// NewAggregator builds an aggregator. A positive concurrency caps in-flight requests
// per batch; zero or less issues every request of a batch together.
func NewAggregator(source providers.StatsSource, concurrency int, logger *slog.Logger, recorder *metrics.Recorder) *Aggregator {
	if concurrency < 0 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{
		source:      source,
		concurrency: concurrency,
		logger:      logger,
		metrics:     recorder,
		now:         time.Now,
	}
}

type slot struct {
	status domainstats.Status
	score  domainstats.Snapshot
	box    domainstats.BoxScore
	ok     bool
}

// Aggregate requests every game's box score concurrently and returns once all of them
// have settled. A failed request marks only its own game as StatusError; siblings are
// neither cancelled nor delayed by it.
func (a *Aggregator) Aggregate(ctx context.Context, list []domaingames.Game) Result {
	start := a.now()
	slots := make([]slot, len(list))

	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, game := range list {
		g.Go(func() error {
			slots[i] = a.fetchOne(ctx, game)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{
		Statuses:  make(map[string]domainstats.Status, len(list)),
		Scores:    make(map[string]domainstats.Snapshot, len(list)),
		BoxScores: make(map[string]domainstats.BoxScore, len(list)),
	}
	for i, game := range list {
		res.Statuses[game.ID] = slots[i].status
		res.Scores[game.ID] = slots[i].score
		if slots[i].ok {
			res.BoxScores[game.ID] = slots[i].box
		}
	}

	duration := a.now().Sub(start)
	counts := res.Counts()
	a.metrics.RecordStatsBatch(duration, counts)
	logging.Info(logging.FromContext(ctx, a.logger), "stats batch settled",
		logging.FieldCount, len(list),
		logging.FieldDurationMS, duration.Milliseconds(),
		"usable", counts[string(domainstats.StatusUsable)],
		"not_usable", counts[string(domainstats.StatusNotUsable)],
		"errors", counts[string(domainstats.StatusError)],
	)
	return res
}

func (a *Aggregator) fetchOne(ctx context.Context, game domaingames.Game) slot {
	if a.source == nil {
		return slot{status: domainstats.StatusError}
	}
	box, err := a.source.FetchGameStats(ctx, game.ID)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, a.logger), "game stats unavailable",
			logging.FieldGameID, game.ID,
			"error", err,
		)
		return slot{status: domainstats.StatusError}
	}
	return slot{
		status: box.Classify(),
		score:  ScoreSnapshot(game, box),
		box:    box,
		ok:     true,
	}
}

// ScoreSnapshot extracts both sides' points from box, matching team lines by id
// and falling back to tricode.
func ScoreSnapshot(game domaingames.Game, box domainstats.BoxScore) domainstats.Snapshot {
	var snap domainstats.Snapshot
	if t, ok := box.Team(game.Away.ID, game.Away.Tricode); ok {
		snap.AwayScore = t.Points
	}
	if t, ok := box.Team(game.Home.ID, game.Home.Tricode); ok {
		snap.HomeScore = t.Points
	}
	return snap
}

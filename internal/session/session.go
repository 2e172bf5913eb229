package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/pagination"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/schedule"
	"github.com/preston-bernstein/nba-schedule-view/internal/selection"
	"github.com/preston-bernstein/nba-schedule-view/internal/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/store"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

var (
	// ErrSuperseded is returned when a newer selection replaced the one a call was
	// working for; its results were discarded.
	ErrSuperseded = errors.New("superseded by a newer selection")
	// ErrNoSelection is returned by operations that need a selected day.
	ErrNoSelection = errors.New("no date selected")
	// ErrGameNotFound is returned for ids outside the current game list.
	ErrGameNotFound = errors.New("game not in current list")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session closed")
	// ErrScheduleLoading is reported until the initial schedule load has finished.
	ErrScheduleLoading = errors.New("schedule loading")
)

// Config wires a Session's collaborators.
type Config struct {
	Source           providers.DataSource
	Store            store.KV
	Location         *time.Location
	PageSize         int
	StatsConcurrency int
	// PrefetchSchedule loads the full schedule once and resolves days from it;
	// otherwise each selection fetches its own day.
	PrefetchSchedule bool
	Logger           *slog.Logger
	Metrics          *metrics.Recorder
	Now              func() time.Time
}

// Session owns all pipeline state for one viewer: schedule index, selected day,
// game list, stats and page. Network calls never run under mu.
type Session struct {
	id        string
	source    providers.DataSource
	kv        store.KV
	loc       *time.Location
	prefetch  bool
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
	loader    schedule.Loader
	agg       *stats.Aggregator
	selection *selection.Manager

	mu          sync.Mutex
	index       *schedule.Index
	scheduleErr error
	// scheduleSettled is false while the first schedule load is in flight.
	scheduleSettled bool
	// awaitingSchedule marks a selection that arrived before the schedule did.
	awaitingSchedule bool
	generation       uint64
	day              timeutil.Day
	hasDay           bool
	resolved         bool
	gamesErr         error
	games            []domaingames.Game
	statuses         map[string]domainstats.Status
	scores           map[string]domainstats.Snapshot
	boxScores        map[string]domainstats.BoxScore
	// statsRequested is the fan-out latch for the current generation.
	statsRequested bool
	statsSettled   bool
	pager          *pagination.Paginator
	closed         bool
}

// New builds a session. Call Init before use.
func New(cfg Config) *Session {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	id := uuid.NewString()
	logger := cfg.Logger
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldSessionID, id))
	}
	return &Session{
		id:        id,
		source:    cfg.Source,
		kv:        cfg.Store,
		loc:       loc,
		prefetch:  cfg.PrefetchSchedule,
		logger:    logger,
		metrics:   cfg.Metrics,
		now:       now,
		loader:    schedule.Loader{Source: cfg.Source, Location: loc, Logger: logger},
		agg:       stats.NewAggregator(cfg.Source, cfg.StatsConcurrency, logger, cfg.Metrics),
		selection: selection.NewManager(cfg.Store, logger),
		index:     schedule.Empty(),
		pager:     pagination.New(cfg.PageSize),
		// Without prefetch there is no schedule to wait for.
		scheduleSettled: !cfg.PrefetchSchedule,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Init loads the schedule (when prefetching) and restores the persisted selection,
// resolving its games and stats. A schedule failure is returned and also kept as
// the session's visible error state until ReloadSchedule succeeds. Selections made
// while Init runs take precedence over the persisted one.
func (s *Session) Init(ctx context.Context) error {
	var loadErr error
	if s.prefetch {
		loadErr = s.applySchedule(s.loader.Load(ctx))
		s.resumeSelection(ctx)
	}
	s.restore(ctx)
	return loadErr
}

// resumeSelection resolves a selection that was made while the schedule loaded.
func (s *Session) resumeSelection(ctx context.Context) {
	s.mu.Lock()
	if !s.awaitingSchedule || !s.hasDay {
		s.mu.Unlock()
		return
	}
	day := s.day
	gen := s.advanceLocked(&day)
	s.mu.Unlock()

	if err := s.resolve(ctx, gen, day); err != nil && !errors.Is(err, ErrSuperseded) {
		logging.Warn(s.logger, "resolving pending selection failed", logging.FieldDate, day.String(), "error", err)
	}
}

func (s *Session) restore(ctx context.Context) {
	day, ok := s.selection.Restore(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	current, has := s.selection.Current()
	if s.hasDay || !has || current != day {
		s.mu.Unlock()
		return
	}
	gen := s.advanceLocked(&day)
	s.mu.Unlock()

	if err := s.resolve(ctx, gen, day); err != nil && !errors.Is(err, ErrSuperseded) {
		logging.Warn(s.logger, "restoring selection failed", logging.FieldDate, day.String(), "error", err)
	}
}

// ReloadSchedule fetches the schedule again and re-resolves the current selection
// against it. This is the only retry path and it is always caller driven. Without
// schedule prefetch there is nothing to reload and it does nothing.
func (s *Session) ReloadSchedule(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	if !s.prefetch {
		return nil
	}
	if err := s.applySchedule(s.loader.Load(ctx)); err != nil {
		return err
	}
	s.mu.Lock()
	if !s.hasDay {
		s.mu.Unlock()
		return nil
	}
	day := s.day
	gen := s.advanceLocked(&day)
	s.mu.Unlock()
	return s.resolve(ctx, gen, day)
}

func (s *Session) applySchedule(res schedule.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = res.Index
	s.scheduleErr = res.Err
	s.scheduleSettled = true
	return res.Err
}

// Select changes the selected day (nil clears it). Re-selecting the current day does
// nothing. Otherwise all per-day state is reset, the day's games are resolved and
// their stats fetched before Select returns. ErrSuperseded means a newer selection
// arrived while this one was in flight.
func (s *Session) Select(ctx context.Context, day *timeutil.Day) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.selection.Swap(day) {
		s.mu.Unlock()
		return nil
	}
	gen := s.advanceLocked(day)
	s.mu.Unlock()

	// The selection outlives the request that made it.
	ctx = context.WithoutCancel(ctx)
	s.selection.Persist(ctx)
	if day == nil {
		logging.Info(s.logger, "selection cleared", logging.FieldGeneration, gen)
		return nil
	}
	logging.Info(s.logger, "date selected", logging.FieldDate, day.String(), logging.FieldGeneration, gen)
	return s.resolve(ctx, gen, *day)
}

// advanceLocked starts a new generation for day and drops everything tied to the
// previous one.
func (s *Session) advanceLocked(day *timeutil.Day) uint64 {
	s.generation++
	s.day, s.hasDay = timeutil.Day{}, false
	if day != nil {
		s.day, s.hasDay = *day, true
	}
	s.resolved = false
	s.awaitingSchedule = false
	s.gamesErr = nil
	s.games = nil
	s.statuses = nil
	s.scores = nil
	s.boxScores = nil
	s.statsRequested = false
	s.statsSettled = false
	s.pager.Reset()
	return s.generation
}

// resolve loads day's games for generation gen and then its stats. With prefetch the
// games come from the schedule index; a selection made before the schedule loaded
// stays pending until Init resumes it.
func (s *Session) resolve(ctx context.Context, gen uint64, day timeutil.Day) error {
	var (
		list []domaingames.Game
		err  error
	)
	if !s.prefetch {
		list, err = s.fetchGames(ctx, day)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if s.prefetch {
		if !s.scheduleSettled {
			s.awaitingSchedule = true
			s.mu.Unlock()
			logging.Info(s.logger, "selection waiting for schedule",
				logging.FieldDate, day.String(),
				logging.FieldGeneration, gen,
			)
			return nil
		}
		list = s.index.GamesOn(day)
	}
	s.resolved = true
	if err != nil {
		s.gamesErr = err
		s.mu.Unlock()
		return err
	}
	s.games = list
	s.statuses = make(map[string]domainstats.Status, len(list))
	for _, g := range list {
		s.statuses[g.ID] = domainstats.StatusUnknown
	}
	s.scores = make(map[string]domainstats.Snapshot, len(list))
	s.boxScores = make(map[string]domainstats.BoxScore, len(list))
	s.pager.Clamp(len(list))
	s.mu.Unlock()

	logging.Info(s.logger, "games resolved",
		logging.FieldDate, day.String(),
		logging.FieldCount, len(list),
		logging.FieldGeneration, gen,
	)
	return s.LoadStats(ctx)
}

// fetchGames resolves day from the per-date endpoint.
func (s *Session) fetchGames(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error) {
	if s.source == nil {
		return nil, &providers.FetchError{Op: providers.OpGamesForDate, Err: providers.ErrSourceUnavailable}
	}
	list, err := s.source.FetchGamesForDate(ctx, day)
	if err != nil {
		return nil, providers.NewFetchError("", providers.OpGamesForDate, 0, err)
	}
	sortByStart(list)
	return list, nil
}

// LoadStats fans out box score requests for the current game list. It fires at most
// once per generation; later calls for the same list return nil immediately.
// Results are published only if no newer selection happened meanwhile. The batch is
// not cut short when ctx is cancelled; only a newer selection discards it.
func (s *Session) LoadStats(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.resolved || s.statsRequested || len(s.games) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.statsRequested = true
	gen := s.generation
	list := append([]domaingames.Game(nil), s.games...)
	day := s.day
	s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	res := s.agg.Aggregate(ctx, list)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.metrics.RecordStaleBatch()
		logging.Info(s.logger, "discarding stale stats batch",
			logging.FieldDate, day.String(),
			logging.FieldGeneration, gen,
		)
		return ErrSuperseded
	}
	s.statuses = res.Statuses
	s.scores = res.Scores
	s.boxScores = res.BoxScores
	s.statsSettled = true
	s.mu.Unlock()

	s.writeCache(ctx, CacheEntry{Date: day, Statuses: res.Statuses, Scores: res.Scores})
	return nil
}

// GameStats returns the full box score for a game in the current list, from the
// settled batch when available and from the source otherwise.
func (s *Session) GameStats(ctx context.Context, gameID string) (domainstats.BoxScore, error) {
	s.mu.Lock()
	found := false
	for _, g := range s.games {
		if g.ID == gameID {
			found = true
			break
		}
	}
	box, cached := s.boxScores[gameID]
	s.mu.Unlock()

	if !found {
		return domainstats.BoxScore{}, ErrGameNotFound
	}
	if cached {
		return box, nil
	}
	if s.source == nil {
		return domainstats.BoxScore{}, &providers.FetchError{Op: providers.OpGameStats, Err: providers.ErrSourceUnavailable}
	}
	box, err := s.source.FetchGameStats(ctx, gameID)
	if err != nil {
		return domainstats.BoxScore{}, fmt.Errorf("game %s: %w", gameID, err)
	}
	return box, nil
}

// Next moves to the next page of the current list.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Next(len(s.games))
}

// Previous moves to the previous page.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Previous()
}

// Generation exposes the current selection generation (primarily for testing).
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Close invalidates any in-flight batch and releases the store.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.generation++
	s.mu.Unlock()

	logging.Info(s.logger, "session closed")
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

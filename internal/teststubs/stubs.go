package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// StubSource is a test double for providers.DataSource.
// Box scores missing from BoxScores come back empty (and therefore not usable).
type StubSource struct {
	Schedule    domaingames.Schedule
	ScheduleErr error
	GamesByDay  map[timeutil.Day][]domaingames.Game
	GamesErr    error
	BoxScores   map[string]stats.BoxScore
	StatsErrs   map[string]error

	// Gates blocks FetchGameStats for a game id until the channel is closed
	// or the context ends.
	Gates map[string]chan struct{}
	// Started, when set, receives each game id as its stats request begins.
	Started chan string
	// ScheduleGate, when set, blocks FetchSchedule until closed or the context ends.
	ScheduleGate chan struct{}

	ScheduleCalls atomic.Int32
	GamesCalls    atomic.Int32
	StatsCalls    atomic.Int32

	mu      sync.Mutex
	statsBy map[string]int
}

// FetchSchedule returns the configured schedule and error while tracking calls.
func (s *StubSource) FetchSchedule(ctx context.Context) (domaingames.Schedule, error) {
	s.ScheduleCalls.Add(1)
	if s.ScheduleGate != nil {
		select {
		case <-s.ScheduleGate:
		case <-ctx.Done():
			return domaingames.Schedule{}, ctx.Err()
		}
	}
	return s.Schedule, s.ScheduleErr
}

// FetchGamesForDate returns the configured games for day.
func (s *StubSource) FetchGamesForDate(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error) {
	_ = ctx
	s.GamesCalls.Add(1)
	if s.GamesErr != nil {
		return nil, s.GamesErr
	}
	return s.GamesByDay[day], nil
}

// FetchGameStats returns the configured box score or error for gameID.
func (s *StubSource) FetchGameStats(ctx context.Context, gameID string) (stats.BoxScore, error) {
	s.StatsCalls.Add(1)
	s.mu.Lock()
	if s.statsBy == nil {
		s.statsBy = make(map[string]int)
	}
	s.statsBy[gameID]++
	s.mu.Unlock()

	if s.Started != nil {
		s.Started <- gameID
	}
	if gate, ok := s.Gates[gameID]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return stats.BoxScore{}, ctx.Err()
		}
	}
	if err := s.StatsErrs[gameID]; err != nil {
		return stats.BoxScore{}, err
	}
	return s.BoxScores[gameID], nil
}

// StatsCallsFor reports how many times stats were requested for gameID.
func (s *StubSource) StatsCallsFor(gameID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsBy[gameID]
}

// StubKV is a test double for store.KV that counts writes per key.
type StubKV struct {
	Values    map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error

	mu      sync.Mutex
	sets    map[string]int
	removes map[string]int
	closed  bool
}

// Get returns the stored value for key.
func (s *StubKV) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.Values[key]
	return v, ok, nil
}

// Set records the write and stores the value unless SetErr is configured.
func (s *StubKV) Set(ctx context.Context, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets == nil {
		s.sets = make(map[string]int)
	}
	s.sets[key]++
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	return nil
}

// Remove records the removal and deletes the key unless RemoveErr is configured.
func (s *StubKV) Remove(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removes == nil {
		s.removes = make(map[string]int)
	}
	s.removes[key]++
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.Values, key)
	return nil
}

// Close marks the store closed.
func (s *StubKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Sets reports how many writes key received.
func (s *StubKV) Sets(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[key]
}

// Removes reports how many removals key received.
func (s *StubKV) Removes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes[key]
}

// Value returns the current value for key.
func (s *StubKV) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Values[key]
	return v, ok
}

// Closed reports whether Close was called.
func (s *StubKV) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

package stats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/teststubs"
	"github.com/preston-bernstein/nba-schedule-view/internal/testutil"
)

func threeGames() []domaingames.Game {
	start := time.Date(2024, 10, 22, 23, 30, 0, 0, time.UTC)
	return []domaingames.Game{
		testutil.SampleGame("A", start, ""),
		testutil.SampleGame("B", start.Add(time.Hour), ""),
		testutil.SampleGame("C", start.Add(2*time.Hour), ""),
	}
}

func TestAggregateClassifiesEachGame(t *testing.T) {
	list := threeGames()
	src := &teststubs.StubSource{
		BoxScores: map[string]domainstats.BoxScore{
			"A": testutil.BoxScoreWithPossessions(list[0], 0, 0, 0, 0, 0),
			"B": testutil.BoxScoreWithPossessions(list[1], 101, 99, 0, 12.5),
		},
		StatsErrs: map[string]error{
			"C": &providers.FetchError{Op: providers.OpGameStats, StatusCode: 500, Err: errors.New("boom")},
		},
	}
	recorder := metrics.NewRecorder()
	agg := NewAggregator(src, 0, nil, recorder)

	res := agg.Aggregate(context.Background(), list)

	want := map[string]domainstats.Status{
		"A": domainstats.StatusNotUsable,
		"B": domainstats.StatusUsable,
		"C": domainstats.StatusError,
	}
	if len(res.Statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %+v", len(want), res.Statuses)
	}
	for id, status := range want {
		if res.Statuses[id] != status {
			t.Fatalf("game %s: expected %s, got %s", id, status, res.Statuses[id])
		}
	}
	if len(res.Scores) != 3 {
		t.Fatalf("expected a score entry per game, got %+v", res.Scores)
	}
	b := res.Scores["B"]
	if b.AwayScore == nil || *b.AwayScore != 101 || b.HomeScore == nil || *b.HomeScore != 99 {
		t.Fatalf("unexpected scores for B: %+v", b)
	}
	if c := res.Scores["C"]; c.AwayScore != nil || c.HomeScore != nil {
		t.Fatalf("expected empty snapshot for failed game, got %+v", c)
	}
	if _, ok := res.BoxScores["C"]; ok {
		t.Fatalf("expected no box score for failed game")
	}
	if len(res.BoxScores) != 2 {
		t.Fatalf("expected two box scores, got %d", len(res.BoxScores))
	}

	snap := recorder.Batches()
	if snap.Batches != 1 || snap.Games != 3 || snap.ByStatus["error"] != 1 {
		t.Fatalf("unexpected batch metrics %+v", snap)
	}
}

func TestAggregateWaitsForEverySlowRequest(t *testing.T) {
	list := threeGames()
	gate := make(chan struct{})
	src := &teststubs.StubSource{
		Gates:     map[string]chan struct{}{"B": gate},
		StatsErrs: map[string]error{"A": errors.New("fast failure")},
		Started:   make(chan string, 3),
	}
	agg := NewAggregator(src, 3, nil, nil)

	done := make(chan Result, 1)
	go func() { done <- agg.Aggregate(context.Background(), list) }()

	seen := map[string]bool{}
	for len(seen) < 3 {
		select {
		case id := <-src.Started:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("expected all requests to start concurrently, saw %v", seen)
		}
	}

	select {
	case <-done:
		t.Fatalf("aggregate returned before the gated request settled")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case res := <-done:
		if res.Statuses["A"] != domainstats.StatusError || res.Statuses["B"] != domainstats.StatusNotUsable {
			t.Fatalf("unexpected statuses %+v", res.Statuses)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("aggregate did not settle")
	}
}

type countingSource struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *countingSource) FetchGameStats(ctx context.Context, gameID string) (domainstats.BoxScore, error) {
	_ = ctx
	_ = gameID
	n := c.inFlight.Add(1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	c.inFlight.Add(-1)
	return domainstats.BoxScore{}, nil
}

func TestAggregateRespectsConcurrencyLimit(t *testing.T) {
	start := time.Date(2024, 10, 22, 23, 30, 0, 0, time.UTC)
	var list []domaingames.Game
	for i := 0; i < 12; i++ {
		list = append(list, testutil.SampleGame(string(rune('a'+i)), start, ""))
	}
	src := &countingSource{}
	res := NewAggregator(src, 2, nil, nil).Aggregate(context.Background(), list)
	if len(res.Statuses) != 12 {
		t.Fatalf("expected 12 statuses, got %d", len(res.Statuses))
	}
	if src.peak.Load() > 2 {
		t.Fatalf("expected at most 2 in flight, saw %d", src.peak.Load())
	}
}

func TestAggregateDefaultIssuesEveryRequestTogether(t *testing.T) {
	start := time.Date(2024, 10, 22, 23, 30, 0, 0, time.UTC)
	gates := map[string]chan struct{}{}
	var list []domaingames.Game
	for i := 0; i < 9; i++ {
		id := string(rune('a' + i))
		list = append(list, testutil.SampleGame(id, start, ""))
		if i < 8 {
			gates[id] = make(chan struct{})
		}
	}
	src := &teststubs.StubSource{Gates: gates, Started: make(chan string, len(list))}
	agg := NewAggregator(src, DefaultConcurrency, nil, nil)

	done := make(chan Result, 1)
	go func() { done <- agg.Aggregate(context.Background(), list) }()

	seen := map[string]bool{}
	for !seen["i"] {
		select {
		case id := <-src.Started:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("ninth request held back behind slow games, started %v", seen)
		}
	}

	for _, gate := range gates {
		close(gate)
	}
	select {
	case res := <-done:
		if len(res.Statuses) != 9 {
			t.Fatalf("expected 9 statuses, got %d", len(res.Statuses))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("aggregate did not settle")
	}
}

func TestAggregateEmptyListAndNilSource(t *testing.T) {
	res := NewAggregator(nil, 0, nil, nil).Aggregate(context.Background(), nil)
	if len(res.Statuses) != 0 || len(res.Scores) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}

	list := threeGames()[:1]
	res = NewAggregator(nil, 0, nil, nil).Aggregate(context.Background(), list)
	if res.Statuses["A"] != domainstats.StatusError {
		t.Fatalf("expected error status without a source, got %s", res.Statuses["A"])
	}
}

func TestScoreSnapshotFallsBackToTricode(t *testing.T) {
	game := testutil.SampleGame("g", time.Now(), "")
	pts := 88
	box := domainstats.BoxScore{Teams: []teams.BoxScore{{TeamID: "other", Tricode: game.Home.Tricode, Points: &pts}}}

	snap := ScoreSnapshot(game, box)
	if snap.HomeScore == nil || *snap.HomeScore != 88 {
		t.Fatalf("expected home score via tricode, got %+v", snap)
	}
	if snap.AwayScore != nil {
		t.Fatalf("expected missing away score, got %v", *snap.AwayScore)
	}
}

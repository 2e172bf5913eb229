package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// Operation names used for logging and metrics.
const (
	OpSchedule     = "schedule"
	OpGamesForDate = "games_for_date"
	OpGameStats    = "game_stats"
)

// ScheduleSource fetches the full league schedule.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context) (domaingames.Schedule, error)
}

// GamesSource resolves a single day's games without a prefetched schedule.
type GamesSource interface {
	FetchGamesForDate(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error)
}

// StatsSource fetches the advanced box score for one game.
type StatsSource interface {
	FetchGameStats(ctx context.Context, gameID string) (stats.BoxScore, error)
}

// DataSource combines all remote data capabilities.
// Implementations return *FetchError for transport, status and payload failures.
type DataSource interface {
	ScheduleSource
	GamesSource
	StatsSource
}

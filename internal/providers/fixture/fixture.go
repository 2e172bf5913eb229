package fixture

import (
	"context"
	"errors"
	"fmt"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/players"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

const sourceName = "fixture"

// Game ids with special box score behavior.
const (
	// GameIDNoPossessions returns a roster where nobody recorded a possession.
	GameIDNoPossessions = "fixture-3"
	// GameIDStatsError always fails its box score request.
	GameIDStatsError = "fixture-4"
)

var (
	celtics  = teams.Team{ID: "1610612738", Tricode: "BOS", Wins: 10, Losses: 2}
	lakers   = teams.Team{ID: "1610612747", Tricode: "LAL", Wins: 7, Losses: 5}
	warriors = teams.Team{ID: "1610612744", Tricode: "GSW", Wins: 8, Losses: 4}
	heat     = teams.Team{ID: "1610612748", Tricode: "MIA", Wins: 5, Losses: 7}
	knicks   = teams.Team{ID: "1610612752", Tricode: "NYK", Wins: 9, Losses: 3}
	nuggets  = teams.Team{ID: "1610612743", Tricode: "DEN", Wins: 6, Losses: 6}
)

// Provider returns a static schedule anchored on the current day, useful for local
// runs and bootstrapping without the upstream API.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return sourceName
}

// FetchSchedule returns a deterministic three-day schedule: yesterday (final), today
// (one final, one with no possessions, one whose stats fail) and tomorrow (a cup and a
// playoff game).
func (p *Provider) FetchSchedule(ctx context.Context) (domaingames.Schedule, error) {
	_ = ctx
	today := p.now().UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	return domaingames.Schedule{Dates: []domaingames.ScheduleDate{
		{Date: yesterday.Format(timeutil.DateLayout), Games: p.gamesFor(yesterday)},
		{Date: today.Format(timeutil.DateLayout), Games: p.gamesFor(today)},
		{Date: tomorrow.Format(timeutil.DateLayout), Games: p.gamesFor(tomorrow)},
	}}, nil
}

// FetchGamesForDate returns the fixture games placed on the requested day.
func (p *Provider) FetchGamesForDate(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error) {
	_ = ctx
	if day.IsZero() {
		return nil, providers.NewFetchError(sourceName, providers.OpGamesForDate, 0, errors.New("day is required"))
	}
	return p.gamesFor(day.Start(time.UTC)), nil
}

// FetchGameStats returns a deterministic box score for the game id.
func (p *Provider) FetchGameStats(ctx context.Context, gameID string) (stats.BoxScore, error) {
	_ = ctx
	switch gameID {
	case GameIDStatsError:
		return stats.BoxScore{}, providers.NewFetchError(sourceName, providers.OpGameStats, 500, fmt.Errorf("box score unavailable for %s", gameID))
	case GameIDNoPossessions:
		return stats.BoxScore{
			Teams: []teams.BoxScore{{TeamID: warriors.ID, Tricode: warriors.Tricode}, {TeamID: heat.ID, Tricode: heat.Tricode}},
			Players: []players.BoxScore{
				{PersonID: "201939", TeamID: warriors.ID, Name: "Stephen Curry", Position: "G", Minutes: "0:00"},
				{PersonID: "202710", TeamID: heat.ID, Name: "Jimmy Butler", Position: "F", Minutes: "0:00"},
			},
		}, nil
	}
	return stats.BoxScore{
		Teams: []teams.BoxScore{
			{TeamID: celtics.ID, Tricode: celtics.Tricode, OffensiveRating: 121.3, DefensiveRating: 108.9, NetRating: 12.4, Points: intPtr(118)},
			{TeamID: lakers.ID, Tricode: lakers.Tricode, OffensiveRating: 108.9, DefensiveRating: 121.3, NetRating: -12.4, Points: intPtr(106)},
		},
		Players: []players.BoxScore{
			{PersonID: "1628369", TeamID: celtics.ID, Name: "Jayson Tatum", Position: "F", Minutes: "36:10", Points: 31, Assists: 6, Rebounds: 9, Possessions: 72},
			{PersonID: "2544", TeamID: lakers.ID, Name: "LeBron James", Position: "F", Minutes: "35:02", Points: 27, Assists: 9, Rebounds: 7, Possessions: 70},
			{PersonID: "1629029", TeamID: lakers.ID, Name: "Bench Player", Position: "G", Minutes: "0:00", Comment: "DNP - Coach's Decision"},
		},
	}, nil
}

func (p *Provider) gamesFor(day time.Time) []domaingames.Game {
	key := day.Format("20060102")
	switch {
	case day.Before(p.now().UTC().Truncate(24 * time.Hour)):
		return []domaingames.Game{
			{ID: "fixture-" + key + "-1", Away: ref(knicks, 101), Home: ref(nuggets, 99), StartTime: day.Add(23 * time.Hour), StatusText: "Final"},
		}
	case day.After(p.now().UTC()):
		return []domaingames.Game{
			{ID: "fixture-5", Away: ref(nuggets, -1), Home: ref(lakers, -1), StartTime: day.Add(20 * time.Hour), Label: "Emirates NBA Cup", StatusText: "Scheduled"},
			{ID: "fixture-6", Away: ref(heat, -1), Home: ref(knicks, -1), StartTime: day.Add(23 * time.Hour), Label: "East First Round - Playoffs", StatusText: "Scheduled"},
		}
	default:
		return []domaingames.Game{
			{ID: "fixture-1", Away: ref(lakers, 106), Home: ref(celtics, 118), StartTime: day.Add(19 * time.Hour), StatusText: "Final"},
			{ID: GameIDNoPossessions, Away: ref(heat, -1), Home: ref(warriors, -1), StartTime: day.Add(22 * time.Hour), StatusText: "Scheduled"},
			{ID: GameIDStatsError, Away: ref(knicks, -1), Home: ref(nuggets, -1), StartTime: day.Add(23 * time.Hour), Label: "Preseason", StatusText: "Scheduled"},
		}
	}
}

// ref attaches a score to a team; a negative score means the game has not started.
func ref(t teams.Team, score int) domaingames.TeamRef {
	if score < 0 {
		return domaingames.TeamRef{Team: t}
	}
	return domaingames.TeamRef{Team: t, Score: intPtr(score)}
}

func intPtr(v int) *int { return &v }

package testutil

import (
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/players"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
)

// SampleGame returns a minimal game fixture starting at start.
func SampleGame(id string, start time.Time, label string) domaingames.Game {
	return domaingames.Game{
		ID:        id,
		Away:      domaingames.TeamRef{Team: teams.Team{ID: "away-" + id, Tricode: "AWY"}},
		Home:      domaingames.TeamRef{Team: teams.Team{ID: "home-" + id, Tricode: "HOM"}},
		StartTime: start,
		Label:     label,
	}
}

// SampleSchedule wraps games in a single upstream date bucket.
func SampleSchedule(list ...domaingames.Game) domaingames.Schedule {
	return domaingames.Schedule{Dates: []domaingames.ScheduleDate{{Date: "bucket", Games: list}}}
}

// BoxScoreWithPossessions builds a box score for g whose players carry the given
// possession values, with team points for both sides.
func BoxScoreWithPossessions(g domaingames.Game, awayPts, homePts int, possessions ...float64) stats.BoxScore {
	box := stats.BoxScore{
		Teams: []teams.BoxScore{
			{TeamID: g.Away.ID, Tricode: g.Away.Tricode, Points: &awayPts},
			{TeamID: g.Home.ID, Tricode: g.Home.Tricode, Points: &homePts},
		},
	}
	for i, p := range possessions {
		box.Players = append(box.Players, players.BoxScore{
			PersonID:    g.ID + "-p" + string(rune('a'+i)),
			Possessions: p,
		})
	}
	return box
}

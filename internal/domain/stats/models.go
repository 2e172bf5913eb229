package stats

import (
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/players"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
)

// Status is the usability classification of one game's box score.
type Status string

const (
	// StatusUnknown is the zero value: no result has arrived yet.
	StatusUnknown   Status = "unknown"
	StatusUsable    Status = "usable"
	StatusNotUsable Status = "not-usable"
	StatusError     Status = "error"
)

// BoxScore is the advanced box score for one game.
type BoxScore struct {
	Teams   []teams.BoxScore   `json:"teams"`
	Players []players.BoxScore `json:"players"`
}

// Classify applies the usability rule: usable when any player recorded a
// non-zero possession count, not-usable otherwise (including an empty roster).
func (b BoxScore) Classify() Status {
	for _, p := range b.Players {
		if p.Played() {
			return StatusUsable
		}
	}
	return StatusNotUsable
}

// Team looks up a team line by id, falling back to tricode.
func (b BoxScore) Team(id, tricode string) (teams.BoxScore, bool) {
	if id != "" {
		for _, t := range b.Teams {
			if t.TeamID == id {
				return t, true
			}
		}
	}
	if tricode != "" {
		for _, t := range b.Teams {
			if t.Tricode == tricode {
				return t, true
			}
		}
	}
	return teams.BoxScore{}, false
}

// Snapshot is the per-game scoring view derived from a box score.
type Snapshot struct {
	AwayScore *int `json:"awayScore"`
	HomeScore *int `json:"homeScore"`
}

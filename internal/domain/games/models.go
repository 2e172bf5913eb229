package games

import (
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
)

// GameType classifies a game for calendar highlighting.
type GameType string

const (
	TypeRegular   GameType = "regular"
	TypePreseason GameType = "preseason"
	TypePlayoff   GameType = "playoff"
	TypeCup       GameType = "cup"
)

// Types lists every GameType in precedence order (highest first).
var Types = []GameType{TypePlayoff, TypeCup, TypePreseason, TypeRegular}

// TypeFromLabel derives a GameType from the upstream game label.
// Matching is a case-insensitive substring test; the first match in
// playoff, cup, preseason order wins and anything else is regular.
func TypeFromLabel(label string) GameType {
	lower := strings.ToLower(label)
	switch {
	case lower == "":
		return TypeRegular
	case strings.Contains(lower, "playoff"):
		return TypePlayoff
	case strings.Contains(lower, "cup"):
		return TypeCup
	case strings.Contains(lower, "preseason"):
		return TypePreseason
	default:
		return TypeRegular
	}
}

// TeamRef is one side of a game: the team plus its score once play has begun.
type TeamRef struct {
	teams.Team
	Score *int `json:"score"`
}

// Game is the canonical game shape produced by providers.
// Values are replaced wholesale on every fetch and never mutated.
type Game struct {
	ID         string    `json:"id"`
	Away       TeamRef   `json:"awayTeam"`
	Home       TeamRef   `json:"homeTeam"`
	StartTime  time.Time `json:"startTime"`
	Label      string    `json:"label,omitempty"`
	StatusText string    `json:"statusText,omitempty"`
}

// Type derives the GameType from the label.
func (g Game) Type() GameType {
	return TypeFromLabel(g.Label)
}

// HasScore reports whether both sides carry a score.
func (g Game) HasScore() bool {
	return g.Away.Score != nil && g.Home.Score != nil
}

// ScheduleDate is one upstream schedule bucket. Date is the upstream's own day label;
// indexing derives the day from each game's start time instead.
type ScheduleDate struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Schedule is the raw league schedule as returned by a provider.
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// AllGames flattens the schedule in upstream order.
func (s Schedule) AllGames() []Game {
	total := 0
	for _, d := range s.Dates {
		total += len(d.Games)
	}
	out := make([]Game, 0, total)
	for _, d := range s.Dates {
		out = append(out, d.Games...)
	}
	return out
}

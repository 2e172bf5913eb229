package teams

import "strconv"

// Team represents the normalized team shape used inside games.
// Kept in its own package so games and box scores can share it without import cycles.
type Team struct {
	ID      string `json:"id"`
	Tricode string `json:"tricode"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
}

// Record formats the season record as wins-losses.
func (t Team) Record() string {
	return strconv.Itoa(t.Wins) + "-" + strconv.Itoa(t.Losses)
}

// BoxScore holds the advanced team line for one game.
type BoxScore struct {
	TeamID          string  `json:"teamId"`
	Tricode         string  `json:"tricode"`
	OffensiveRating float64 `json:"offensiveRating"`
	DefensiveRating float64 `json:"defensiveRating"`
	NetRating       float64 `json:"netRating"`
	// Points is absent when the upstream feed carries ratings only.
	Points *int `json:"points,omitempty"`
}

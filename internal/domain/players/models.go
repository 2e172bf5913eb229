package players

// BoxScore is one player's line in the advanced box score.
type BoxScore struct {
	PersonID    string  `json:"personId"`
	TeamID      string  `json:"teamId,omitempty"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Minutes     string  `json:"minutes"`
	Points      int     `json:"points"`
	Assists     int     `json:"assists"`
	Rebounds    int     `json:"rebounds"`
	Possessions float64 `json:"possessions"`
	Comment     string  `json:"comment,omitempty"`
}

// Played reports whether the line records any possessions.
func (b BoxScore) Played() bool {
	return b.Possessions != 0
}

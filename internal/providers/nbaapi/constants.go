package nbaapi

import "time"

const (
	sourceName         = "nbaapi"
	defaultBaseURL     = "http://127.0.0.1:5000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 512
	userAgent          = "nba-schedule-view/1.0"

	schedulePath    = "/api/schedule"
	gamesByDatePath = "/api/games_by_date/"
	gameStatsPath   = "/api/game_stats/"
)

// gameStatusScheduled is the upstream gameStatus code for a game that has not started.
const gameStatusScheduled = 1

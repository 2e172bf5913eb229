package nbaapi

import "encoding/json"

type scheduleResponse struct {
	LeagueSchedule *leagueSchedule `json:"leagueSchedule"`
}

type leagueSchedule struct {
	SeasonYear string             `json:"seasonYear"`
	GameDates  []gameDateResponse `json:"gameDates"`
}

type gameDateResponse struct {
	GameDate string         `json:"gameDate"`
	Games    []gameResponse `json:"games"`
}

type gamesByDateResponse struct {
	GameDate string          `json:"gameDate"`
	Games    *[]gameResponse `json:"games"`
}

type gameResponse struct {
	GameID          string       `json:"gameId"`
	GameStatus      int          `json:"gameStatus"`
	GameStatusText  string       `json:"gameStatusText"`
	GameLabel       string       `json:"gameLabel"`
	GameSubLabel    string       `json:"gameSubLabel"`
	GameDateTimeUTC string       `json:"gameDateTimeUTC"`
	HomeTeam        teamResponse `json:"homeTeam"`
	AwayTeam        teamResponse `json:"awayTeam"`
}

type teamResponse struct {
	TeamID      json.Number `json:"teamId"`
	TeamTricode string      `json:"teamTricode"`
	Wins        int         `json:"wins"`
	Losses      int         `json:"losses"`
	Score       *int        `json:"score"`
}

type boxScoreResponse struct {
	PlayerStats *[]playerStatResponse `json:"PlayerStats"`
	TeamStats   *[]teamStatResponse   `json:"TeamStats"`
	Error       string                `json:"error"`
}

type playerStatResponse struct {
	PersonID      json.Number `json:"personId"`
	TeamID        json.Number `json:"teamId"`
	FirstName     string      `json:"firstName"`
	FamilyName    string      `json:"familyName"`
	Position      string      `json:"position"`
	Comment       string      `json:"comment"`
	Minutes       string      `json:"minutes"`
	Points        int         `json:"points"`
	Assists       int         `json:"assists"`
	Rebounds      int         `json:"rebounds"`
	ReboundsTotal int         `json:"reboundsTotal"`
	Possessions   float64     `json:"possessions"`
}

type teamStatResponse struct {
	TeamID          json.Number `json:"teamId"`
	TeamTricode     string      `json:"teamTricode"`
	OffensiveRating float64     `json:"offensiveRating"`
	DefensiveRating float64     `json:"defensiveRating"`
	NetRating       float64     `json:"netRating"`
	Points          *int        `json:"points"`
}

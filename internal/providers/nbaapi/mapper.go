package nbaapi

import (
	"fmt"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/players"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
)

func mapSchedule(resp scheduleResponse) (domaingames.Schedule, error) {
	if resp.LeagueSchedule == nil {
		return domaingames.Schedule{}, fmt.Errorf("%w: missing leagueSchedule", providers.ErrMalformedPayload)
	}
	out := domaingames.Schedule{Dates: make([]domaingames.ScheduleDate, 0, len(resp.LeagueSchedule.GameDates))}
	for _, gd := range resp.LeagueSchedule.GameDates {
		list, err := mapGames(gd.Games)
		if err != nil {
			return domaingames.Schedule{}, fmt.Errorf("game date %q: %w", gd.GameDate, err)
		}
		out.Dates = append(out.Dates, domaingames.ScheduleDate{Date: gd.GameDate, Games: list})
	}
	return out, nil
}

func mapGames(raw []gameResponse) ([]domaingames.Game, error) {
	out := make([]domaingames.Game, 0, len(raw))
	for _, g := range raw {
		game, err := mapGame(g)
		if err != nil {
			return nil, err
		}
		out = append(out, game)
	}
	return out, nil
}

func mapGame(g gameResponse) (domaingames.Game, error) {
	id := strings.TrimSpace(g.GameID)
	if id == "" {
		return domaingames.Game{}, fmt.Errorf("%w: game without gameId", providers.ErrMalformedPayload)
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(g.GameDateTimeUTC))
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("%w: game %s start time %q", providers.ErrMalformedPayload, id, g.GameDateTimeUTC)
	}

	label := strings.TrimSpace(g.GameLabel)
	if sub := strings.TrimSpace(g.GameSubLabel); sub != "" && label != "" {
		label = label + " - " + sub
	}

	return domaingames.Game{
		ID:         id,
		Away:       mapTeamRef(g.AwayTeam, g.GameStatus),
		Home:       mapTeamRef(g.HomeTeam, g.GameStatus),
		StartTime:  start.UTC(),
		Label:      label,
		StatusText: strings.TrimSpace(g.GameStatusText),
	}, nil
}

func mapTeamRef(t teamResponse, gameStatus int) domaingames.TeamRef {
	ref := domaingames.TeamRef{
		Team: teams.Team{
			ID:      t.TeamID.String(),
			Tricode: t.TeamTricode,
			Wins:    t.Wins,
			Losses:  t.Losses,
		},
	}
	// The schedule reports 0-0 for games that have not tipped off.
	if t.Score != nil && gameStatus != gameStatusScheduled {
		score := *t.Score
		ref.Score = &score
	}
	return ref
}

func mapBoxScore(resp boxScoreResponse) (stats.BoxScore, error) {
	if msg := strings.TrimSpace(resp.Error); msg != "" {
		return stats.BoxScore{}, fmt.Errorf("%w: upstream error: %s", providers.ErrMalformedPayload, msg)
	}
	if resp.PlayerStats == nil && resp.TeamStats == nil {
		return stats.BoxScore{}, fmt.Errorf("%w: missing PlayerStats and TeamStats", providers.ErrMalformedPayload)
	}

	var box stats.BoxScore
	if resp.TeamStats != nil {
		box.Teams = make([]teams.BoxScore, 0, len(*resp.TeamStats))
		for _, t := range *resp.TeamStats {
			box.Teams = append(box.Teams, teams.BoxScore{
				TeamID:          t.TeamID.String(),
				Tricode:         t.TeamTricode,
				OffensiveRating: t.OffensiveRating,
				DefensiveRating: t.DefensiveRating,
				NetRating:       t.NetRating,
				Points:          t.Points,
			})
		}
	}
	if resp.PlayerStats != nil {
		box.Players = make([]players.BoxScore, 0, len(*resp.PlayerStats))
		for _, p := range *resp.PlayerStats {
			box.Players = append(box.Players, mapPlayer(p))
		}
	}
	return box, nil
}

func mapPlayer(p playerStatResponse) players.BoxScore {
	rebounds := p.Rebounds
	if rebounds == 0 {
		rebounds = p.ReboundsTotal
	}
	return players.BoxScore{
		PersonID:    p.PersonID.String(),
		TeamID:      p.TeamID.String(),
		Name:        strings.TrimSpace(p.FirstName + " " + p.FamilyName),
		Position:    p.Position,
		Minutes:     p.Minutes,
		Points:      p.Points,
		Assists:     p.Assists,
		Rebounds:    rebounds,
		Possessions: p.Possessions,
		Comment:     strings.TrimSpace(p.Comment),
	}
}

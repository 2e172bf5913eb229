package games

import (
	"reflect"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-view/internal/domain/teams"
)

func TestTypeFromLabel(t *testing.T) {
	cases := map[string]GameType{
		"":                          TypeRegular,
		"Regular Season":            TypeRegular,
		"Preseason":                 TypePreseason,
		"PRESEASON":                 TypePreseason,
		"East First Round Playoffs": TypePlayoff,
		"Emirates NBA Cup":          TypeCup,
		"NBA Cup - Playoffs":        TypePlayoff,
		"Cup Preseason Showcase":    TypeCup,
		"Play-In Tournament":        TypeRegular,
	}
	for label, want := range cases {
		if got := TypeFromLabel(label); got != want {
			t.Fatalf("label %q expected %s, got %s", label, want, got)
		}
	}
}

func TestTypesOrderedByPrecedence(t *testing.T) {
	want := []GameType{TypePlayoff, TypeCup, TypePreseason, TypeRegular}
	if !reflect.DeepEqual(Types, want) {
		t.Fatalf("unexpected precedence %v", Types)
	}
}

func TestGameHasScore(t *testing.T) {
	score := 101
	g := Game{Away: TeamRef{Score: &score}}
	if g.HasScore() {
		t.Fatal("expected missing home score to report no score")
	}
	g.Home = TeamRef{Score: &score}
	if !g.HasScore() {
		t.Fatal("expected both scores present")
	}
}

func TestScheduleAllGamesKeepsOrder(t *testing.T) {
	start := time.Date(2024, 10, 22, 23, 30, 0, 0, time.UTC)
	s := Schedule{Dates: []ScheduleDate{
		{Date: "10/22/2024", Games: []Game{{ID: "a", StartTime: start}, {ID: "b", StartTime: start}}},
		{Date: "10/23/2024", Games: []Game{{ID: "c", StartTime: start.Add(24 * time.Hour)}}},
	}}
	all := s.AllGames()
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unexpected flatten result %+v", all)
	}
}

func TestTeamRefEmbedsTeam(t *testing.T) {
	ref := TeamRef{Team: teams.Team{Tricode: "LAL", Wins: 1, Losses: 2}}
	if ref.Tricode != "LAL" || ref.Record() != "1-2" {
		t.Fatalf("unexpected team ref %+v", ref)
	}
}

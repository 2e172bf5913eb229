package schedule

import (
	"sort"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// TypeCount is how many games of one type fall on a day.
type TypeCount struct {
	Type  domaingames.GameType `json:"type"`
	Count int                  `json:"count"`
}

// Index maps calendar days to their games and per-type counts.
// It is built once per schedule fetch and never mutated afterwards.
type Index struct {
	loc    *time.Location
	games  map[timeutil.Day][]domaingames.Game
	counts map[timeutil.Day][]TypeCount
	days   []timeutil.Day
}

// Build groups every game in sched by the calendar day of its start time in loc.
// The upstream date buckets are ignored so that a game is never filed under a day
// that disagrees with its own timestamp.
func Build(sched domaingames.Schedule, loc *time.Location) *Index {
	if loc == nil {
		loc = time.UTC
	}
	idx := &Index{
		loc:    loc,
		games:  make(map[timeutil.Day][]domaingames.Game),
		counts: make(map[timeutil.Day][]TypeCount),
	}
	for _, g := range sched.AllGames() {
		day := timeutil.DayOf(g.StartTime, loc)
		idx.games[day] = append(idx.games[day], g)
	}

	idx.days = make([]timeutil.Day, 0, len(idx.games))
	for day, list := range idx.games {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartTime.Before(list[j].StartTime)
		})
		idx.counts[day] = countTypes(list)
		idx.days = append(idx.days, day)
	}
	sort.Slice(idx.days, func(i, j int) bool { return idx.days[i].Before(idx.days[j]) })
	return idx
}

// Empty returns an index with no days, used when the schedule could not be loaded.
func Empty() *Index {
	return Build(domaingames.Schedule{}, nil)
}

func countTypes(list []domaingames.Game) []TypeCount {
	byType := make(map[domaingames.GameType]int, len(domaingames.Types))
	for _, g := range list {
		byType[g.Type()]++
	}
	out := make([]TypeCount, 0, len(byType))
	for _, t := range domaingames.Types {
		if n := byType[t]; n > 0 {
			out = append(out, TypeCount{Type: t, Count: n})
		}
	}
	return out
}

// GamesOn returns the games on day ordered by start time. The returned slice is a copy.
func (i *Index) GamesOn(day timeutil.Day) []domaingames.Game {
	if i == nil {
		return nil
	}
	list := i.games[day]
	if len(list) == 0 {
		return nil
	}
	out := make([]domaingames.Game, len(list))
	copy(out, list)
	return out
}

// Counts returns the per-type counts for day in precedence order.
func (i *Index) Counts(day timeutil.Day) []TypeCount {
	if i == nil {
		return nil
	}
	list := i.counts[day]
	if len(list) == 0 {
		return nil
	}
	out := make([]TypeCount, len(list))
	copy(out, list)
	return out
}

// Highlight returns the single calendar modifier for day: the highest precedence
// type with at least one game. It reports false for days without games.
func (i *Index) Highlight(day timeutil.Day) (domaingames.GameType, bool) {
	counts := i.Counts(day)
	if len(counts) == 0 {
		return "", false
	}
	return counts[0].Type, true
}

// Days lists every day with at least one game, ascending.
func (i *Index) Days() []timeutil.Day {
	if i == nil {
		return nil
	}
	out := make([]timeutil.Day, len(i.days))
	copy(out, i.days)
	return out
}

// Len reports the number of indexed games.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	total := 0
	for _, list := range i.games {
		total += len(list)
	}
	return total
}

// Location is the zone used to derive calendar days.
func (i *Index) Location() *time.Location {
	if i == nil || i.loc == nil {
		return time.UTC
	}
	return i.loc
}

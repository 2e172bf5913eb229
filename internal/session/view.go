package session

import (
	"sort"
	"time"

	"github.com/preston-bernstein/nba-schedule-view/internal/countdown"
	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/pagination"
	"github.com/preston-bernstein/nba-schedule-view/internal/schedule"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// State is the presentation state of a session.
type State string

const (
	StateNoSelection   State = "no-selection"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateScheduleError State = "schedule-error"
	StateGamesError    State = "games-error"
)

// TeamView is one side of a rendered game.
type TeamView struct {
	ID      string `json:"id"`
	Tricode string `json:"tricode"`
	Record  string `json:"record"`
	Score   *int   `json:"score"`
}

// GameView is a game as rendered on the current page.
type GameView struct {
	ID         string               `json:"id"`
	Away       TeamView             `json:"away"`
	Home       TeamView             `json:"home"`
	StartTime  time.Time            `json:"startTime"`
	Label      string               `json:"label,omitempty"`
	StatusText string               `json:"statusText,omitempty"`
	Type       domaingames.GameType `json:"type"`
	Stats      domainstats.Status   `json:"stats"`
	Countdown  string               `json:"countdown"`
}

// View is a read-only snapshot of the session for rendering.
type View struct {
	SessionID    string        `json:"sessionId"`
	State        State         `json:"state"`
	Date         *timeutil.Day `json:"date"`
	Error        string        `json:"error,omitempty"`
	Games        []GameView    `json:"games"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PageCount    int           `json:"pageCount"`
	PageSize     int           `json:"pageSize"`
	CanNext      bool          `json:"canNext"`
	CanPrevious  bool          `json:"canPrevious"`
	StatsPending bool          `json:"statsPending"`
}

// View renders the current page with countdowns computed against now.
func (s *Session) View(now time.Time) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:   s.id,
		Games:       []GameView{},
		Total:       len(s.games),
		Page:        s.pager.Page(),
		PageCount:   s.pager.PageCount(len(s.games)),
		PageSize:    s.pager.Size(),
		CanNext:     s.pager.CanNext(len(s.games)),
		CanPrevious: s.pager.CanPrevious(),
	}
	if s.hasDay {
		day := s.day
		v.Date = &day
	}

	switch {
	case !s.scheduleSettled:
		v.State = StateLoading
	case s.prefetch && s.scheduleErr != nil:
		v.State = StateScheduleError
		v.Error = s.scheduleErr.Error()
	case !s.hasDay:
		v.State = StateNoSelection
	case !s.resolved:
		v.State = StateLoading
	case s.gamesErr != nil:
		v.State = StateGamesError
		v.Error = s.gamesErr.Error()
	default:
		v.State = StateReady
		v.StatsPending = len(s.games) > 0 && !s.statsSettled
	}

	for _, g := range pagination.Slice(s.pager, s.games) {
		v.Games = append(v.Games, s.gameView(now, g))
	}
	return v
}

func (s *Session) gameView(now time.Time, g domaingames.Game) GameView {
	status := s.statuses[g.ID]
	if status == "" {
		status = domainstats.StatusUnknown
	}
	away, home := g.Away.Score, g.Home.Score
	if snap, ok := s.scores[g.ID]; ok {
		if snap.AwayScore != nil {
			away = snap.AwayScore
		}
		if snap.HomeScore != nil {
			home = snap.HomeScore
		}
	}
	return GameView{
		ID:         g.ID,
		Away:       TeamView{ID: g.Away.ID, Tricode: g.Away.Tricode, Record: g.Away.Record(), Score: away},
		Home:       TeamView{ID: g.Home.ID, Tricode: g.Home.Tricode, Record: g.Home.Record(), Score: home},
		StartTime:  g.StartTime.In(s.loc),
		Label:      g.Label,
		StatusText: g.StatusText,
		Type:       g.Type(),
		Stats:      status,
		Countdown:  countdown.Format(now, g.StartTime),
	}
}

// Statuses returns a copy of the per-game classifications for the current list.
func (s *Session) Statuses() map[string]domainstats.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domainstats.Status, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// Scores returns a copy of the per-game score snapshots for the current list.
func (s *Session) Scores() map[string]domainstats.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domainstats.Snapshot, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

// CalendarDay is one highlighted day of the schedule.
type CalendarDay struct {
	Date      timeutil.Day         `json:"date"`
	Highlight domaingames.GameType `json:"highlight"`
	Counts    []schedule.TypeCount `json:"counts"`
}

// Ready reports ErrScheduleLoading until the initial schedule load finished and the
// load error after a failed one. It is nil without schedule prefetch.
func (s *Session) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scheduleSettled {
		return ErrScheduleLoading
	}
	return s.scheduleErr
}

// Calendar lists every scheduled day with its highlight and type counts. It is empty
// when the schedule failed to load, alongside the load error, and while it is still
// loading, alongside ErrScheduleLoading.
func (s *Session) Calendar() ([]CalendarDay, error) {
	s.mu.Lock()
	idx, err := s.index, s.scheduleErr
	if !s.scheduleSettled {
		err = ErrScheduleLoading
	}
	s.mu.Unlock()

	days := idx.Days()
	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		hl, _ := idx.Highlight(d)
		out = append(out, CalendarDay{Date: d, Highlight: hl, Counts: idx.Counts(d)})
	}
	return out, err
}

func sortByStart(list []domaingames.Game) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.Before(list[j].StartTime)
	})
}

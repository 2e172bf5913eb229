package selection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/store"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// Manager owns the selected calendar day and keeps it in durable storage.
type Manager struct {
	kv     store.KV
	logger *slog.Logger

	mu      sync.Mutex
	current timeutil.Day
	has     bool

	// writeMu orders persistence writes; the value written is always the latest
	// selection, read under mu at write time.
	writeMu sync.Mutex
}

// NewManager returns a manager with no selection. A nil kv keeps the selection in
// memory only.
func NewManager(kv store.KV, logger *slog.Logger) *Manager {
	return &Manager{kv: kv, logger: logger}
}

// Restore loads the persisted selection. A missing, unreadable or malformed value
// leaves the manager with no selection. A selection made before Restore completes
// is kept and Restore reports false.
func (m *Manager) Restore(ctx context.Context) (timeutil.Day, bool) {
	if m.kv == nil {
		return timeutil.Day{}, false
	}
	raw, ok, err := m.kv.Get(ctx, store.KeySelectedDate)
	if err != nil {
		logging.Warn(m.logger, "restore selection failed", "error", err)
		return timeutil.Day{}, false
	}
	if !ok || raw == "" {
		return timeutil.Day{}, false
	}
	day, err := timeutil.ParseDay(raw)
	if err != nil {
		logging.Warn(m.logger, "ignoring malformed persisted selection", logging.FieldDate, raw, "error", err)
		return timeutil.Day{}, false
	}

	m.mu.Lock()
	if m.has {
		current := m.current
		m.mu.Unlock()
		logging.Info(m.logger, "keeping newer selection over persisted one",
			logging.FieldDate, current.String(), "persisted", day.String())
		return timeutil.Day{}, false
	}
	m.current, m.has = day, true
	m.mu.Unlock()
	logging.Info(m.logger, "selection restored", logging.FieldDate, day.String())
	return day, true
}

// Select sets the selected day, or clears it when day is nil. Selecting the day that
// is already selected is a no-op. It reports whether the selection changed; a
// persistence failure is logged and does not undo the in-memory change.
func (m *Manager) Select(ctx context.Context, day *timeutil.Day) bool {
	if !m.Swap(day) {
		return false
	}
	m.Persist(ctx)
	return true
}

// Swap updates the in-memory selection only and reports whether it changed.
// Callers that need to pair the change with their own state use Swap under their
// lock and call Persist afterwards.
func (m *Manager) Swap(day *timeutil.Day) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case day == nil && !m.has:
		return false
	case day != nil && m.has && *day == m.current:
		return false
	case day == nil:
		m.current, m.has = timeutil.Day{}, false
	default:
		m.current, m.has = *day, true
	}
	return true
}

// Current returns the selected day, if any.
func (m *Manager) Current() (timeutil.Day, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.has
}

// Persist writes the current selection, removing the key when nothing is selected.
func (m *Manager) Persist(ctx context.Context) {
	if m.kv == nil {
		return
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	day, has := m.Current()
	var err error
	if has {
		err = m.kv.Set(ctx, store.KeySelectedDate, day.String())
	} else {
		err = m.kv.Remove(ctx, store.KeySelectedDate)
	}
	if err != nil {
		logging.Warn(m.logger, "persist selection failed", logging.FieldDate, day.String(), "error", err)
	}
}

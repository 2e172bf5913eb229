package session

import (
	"context"
	"encoding/json"

	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/store"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// CacheEntry is the stats blob persisted after a full batch settles.
type CacheEntry struct {
	Date     timeutil.Day                    `json:"date"`
	Statuses map[string]domainstats.Status   `json:"statuses"`
	Scores   map[string]domainstats.Snapshot `json:"scores"`
}

// writeCache stores entry under the stats cache key. Failures are logged and dropped.
func (s *Session) writeCache(ctx context.Context, entry CacheEntry) {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err == nil {
		err = s.kv.Set(ctx, store.KeyStatsCache, string(data))
	}
	if err != nil {
		logging.Warn(s.logger, "stats cache write failed", logging.FieldDate, entry.Date.String(), "error", err)
	}
}

// CachedStats returns the persisted stats blob when it belongs to day.
func (s *Session) CachedStats(ctx context.Context, day timeutil.Day) (CacheEntry, bool) {
	if s.kv == nil {
		return CacheEntry{}, false
	}
	raw, ok, err := s.kv.Get(ctx, store.KeyStatsCache)
	if err != nil || !ok {
		return CacheEntry{}, false
	}
	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logging.Warn(s.logger, "ignoring unreadable stats cache", "error", err)
		return CacheEntry{}, false
	}
	if entry.Date != day {
		return CacheEntry{}, false
	}
	return entry, true
}

package store

import (
	"context"
	"errors"
)

// Keys persisted by the pipeline.
const (
	KeySelectedDate = "selectedDate"
	KeyStatsCache   = "gameStatsCache"
)

// ErrNotConfigured is returned by operations on a nil store.
var ErrNotConfigured = errors.New("store not configured")

// KV is the durable string key-value storage used for the selected date and the
// stats cache. Get reports a missing key with ok=false and a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

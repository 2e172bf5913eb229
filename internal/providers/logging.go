package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
)

// logWithSource emits a log entry if a logger is available and always includes the source name.
// A request-scoped logger on ctx takes precedence over the fallback.
func logWithSource(ctx context.Context, fallback *slog.Logger, level slog.Level, source string, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldSource, source))
	logger.Log(ctx, level, msg, args...)
}

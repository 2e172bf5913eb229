package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nba-schedule-view/internal/config"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers/fixture"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers/nbaapi"
)

const (
	sourceFixture = "fixture"
	sourceNBAAPI  = "nbaapi"
)

func selectSource(cfg config.Config, logger *slog.Logger) providers.DataSource {
	switch cfg.Source {
	case sourceFixture, "":
		return fixture.New()
	case sourceNBAAPI:
		return nbaapi.NewClient(nbaapi.Config{
			BaseURL: cfg.NBAAPI.BaseURL,
			APIKey:  cfg.NBAAPI.APIKey,
			Timeout: cfg.NBAAPI.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown source, falling back to fixture", slog.String("source", cfg.Source))
		}
		return fixture.New()
	}
}

// sourceFactory assembles the data source with the shared instrumentation wrapper.
// Failed fetches surface to the caller as-is; nothing here retries.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, recorder *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: recorder}
}

func (f sourceFactory) build(cfg config.Config) providers.DataSource {
	return f.wrap(selectSource(cfg, f.logger), cfg.Source)
}

func (f sourceFactory) wrap(src providers.DataSource, configured string) providers.DataSource {
	return providers.NewInstrumentedSource(src, f.logger, f.metrics, normalizeSourceName(configured, src))
}

type namedSource interface {
	Name() string
}

// normalizeSourceName returns a lower-cased source name, deriving it from the instance
// when not configured, so metrics and logs agree on one label.
func normalizeSourceName(raw string, src providers.DataSource) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if n, ok := src.(namedSource); ok && n.Name() != "" {
		return strings.ToLower(n.Name())
	}
	return "source"
}

package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/preston-bernstein/nba-schedule-view/internal/http/handlers"
	"github.com/preston-bernstein/nba-schedule-view/internal/http/middleware"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
)

// RouterConfig carries the cross-cutting pieces the router wraps handlers with.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers HTTP routes on a chi router. Admin routes are mounted only
// when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodPost, nethttp.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
		}).Handler)
	}

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/calendar", handler.Calendar)
	r.Get("/selection", handler.Selection)
	r.Put("/selection", handler.Select)
	r.Get("/games", handler.Games)
	r.Post("/games/next", handler.NextPage)
	r.Post("/games/previous", handler.PreviousPage)
	r.Get("/games/{id}/stats", handler.GameStats)
	r.Get("/stats/cache", handler.CachedStats)

	if admin != nil {
		r.Post("/admin/schedule/reload", admin.ReloadSchedule)
	}
	return r
}

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-schedule-view/internal/config"
	httpserver "github.com/preston-bernstein/nba-schedule-view/internal/http"
	"github.com/preston-bernstein/nba-schedule-view/internal/http/handlers"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/session"
	"github.com/preston-bernstein/nba-schedule-view/internal/store"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

var metricsSetup = metrics.Setup

// pipeline is the part of the session the server drives directly.
type pipeline interface {
	Init(ctx context.Context) error
	Close() error
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	session       pipeline
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured source, storage backend and session.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil, nil)
}

func newServerWithSource(cfg config.Config, logger *slog.Logger, src providers.DataSource, kv store.KV) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	factory := newSourceFactory(logger, recorder)
	if src == nil {
		src = factory.build(cfg)
	} else {
		src = factory.wrap(src, cfg.Source)
	}
	if kv == nil {
		kv = buildStore(context.Background(), cfg.Storage, logger)
	}

	sess := session.New(session.Config{
		Source:           src,
		Store:            kv,
		Location:         resolveLocation(cfg.Pipeline.Timezone, logger),
		PageSize:         cfg.Pipeline.PageSize,
		StatsConcurrency: cfg.Pipeline.StatsConcurrency,
		PrefetchSchedule: cfg.Pipeline.PrefetchSchedule,
		Logger:           logger.With(slog.String(logging.FieldSource, normalizeSourceName(cfg.Source, src))),
		Metrics:          recorder,
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		session:       sess,
		httpServer:    buildHTTPServer(cfg, sess, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, sess pipeline, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		session:    sess,
		httpServer: httpSrv,
	}
}

func resolveLocation(name string, logger *slog.Logger) *time.Location {
	if loc := timeutil.ResolveLocation(name); loc != nil {
		return loc
	}
	logging.Warn(logger, "unknown timezone, using UTC", slog.String("timezone", name))
	return time.UTC
}

func buildHTTPServer(cfg config.Config, sess *session.Session, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(sess, logger)
	// Admin reload is mounted only when a token is configured.
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(sess, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, httpserver.RouterConfig{
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, initializes the session, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.initSession(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// initSession loads the schedule and restores the persisted selection. A failed
// schedule load leaves the session in its error state; /ready reports it.
func (s *Server) initSession(ctx context.Context) {
	if s.session == nil {
		return
	}
	if err := s.session.Init(ctx); err != nil {
		logging.Warn(s.logger, "schedule load failed", slog.Any("err", err))
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.session != nil {
		if err := s.session.Close(); err != nil && s.logger != nil {
			s.logger.Error("failed to close session", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

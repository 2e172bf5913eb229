package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-schedule-view/internal/config"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotEnvErr := config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-schedule-view",
		Version: appVersion,
	})
	if dotEnvErr != nil {
		logger.Warn("ignoring unreadable .env file", slog.Any("err", dotEnvErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-schedule-view/internal/http/requestutil"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
)

// ScheduleReloader reloads the schedule behind a session.
type ScheduleReloader interface {
	ReloadSchedule(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	reloader ScheduleReloader
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(reloader ScheduleReloader, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reloader: reloader,
		token:    token,
		logger:   logger,
	}
}

// ReloadSchedule fetches the schedule again after a failed load. It is the only way
// a schedule failure is retried. Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) ReloadSchedule(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.reloader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "session not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.reloader.ReloadSchedule(r.Context()); err != nil {
		logging.Warn(logger, "admin schedule reload failed", slog.Any("err", err))
		writeError(w, r, statusForError(err), err.Error(), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	logging.Info(logger, "admin schedule reloaded")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}

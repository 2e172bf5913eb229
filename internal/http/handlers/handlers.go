package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domainstats "github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/session"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

const maxSelectionBody = 1 << 10

// Viewer is the part of a session the read/write endpoints drive.
type Viewer interface {
	Ready() error
	View(now time.Time) session.View
	Calendar() ([]session.CalendarDay, error)
	Select(ctx context.Context, day *timeutil.Day) error
	Next() bool
	Previous() bool
	GameStats(ctx context.Context, gameID string) (domainstats.BoxScore, error)
	CachedStats(ctx context.Context, day timeutil.Day) (session.CacheEntry, bool)
}

type nowFunc func() time.Time

// Handler exposes a session as JSON.
type Handler struct {
	session Viewer
	logger  *slog.Logger
	now     nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(sess Viewer, logger *slog.Logger) *Handler {
	return &Handler{
		session: sess,
		logger:  logger,
		now:     time.Now,
	}
}

type selectionBody struct {
	Date *string `json:"date"`
}

type selectionResponse struct {
	Date *timeutil.Day `json:"date"`
}

type calendarResponse struct {
	Days []session.CalendarDay `json:"days"`
}

type pageResponse struct {
	Moved bool `json:"moved"`
	session.View
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the schedule is loaded and the session can serve days.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.session == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "session not configured", h.logger)
		return
	}
	if err := h.session.Ready(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Calendar lists scheduled days with their highlight and type counts.
func (h *Handler) Calendar(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodGet) {
		return
	}
	days, err := h.session.Calendar()
	if err != nil {
		h.writeSessionError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, calendarResponse{Days: days}, h.logger)
}

// Selection returns the selected day, or null.
func (h *Handler) Selection(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodGet) {
		return
	}
	v := h.session.View(h.now())
	writeJSON(w, nethttp.StatusOK, selectionResponse{Date: v.Date}, h.logger)
}

// Select sets or clears the selected day and returns the resulting view once its
// games and stats settled.
func (h *Handler) Select(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodPut) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var body selectionBody
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxSelectionBody))
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid body (expected {\"date\": \"YYYY-MM-DD\"|null})", logger)
		return
	}

	var day *timeutil.Day
	if body.Date != nil {
		parsed, err := timeutil.ParseDay(strings.TrimSpace(*body.Date))
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
			return
		}
		day = &parsed
	}

	if err := h.session.Select(r.Context(), day); err != nil {
		h.writeSessionError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.session.View(h.now()), logger)
}

// Games returns the current page of the selected day.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodGet) {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.session.View(h.now()), h.logger)
}

// NextPage advances the page when more games remain.
func (h *Handler) NextPage(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodPost) {
		return
	}
	moved := h.session.Next()
	writeJSON(w, nethttp.StatusOK, pageResponse{Moved: moved, View: h.session.View(h.now())}, h.logger)
}

// PreviousPage steps back one page when not on the first.
func (h *Handler) PreviousPage(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodPost) {
		return
	}
	moved := h.session.Previous()
	writeJSON(w, nethttp.StatusOK, pageResponse{Moved: moved, View: h.session.View(h.now())}, h.logger)
}

// GameStats returns the full box score of a game in the current list.
func (h *Handler) GameStats(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodGet) {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	box, err := h.session.GameStats(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, box, h.logger)
}

// CachedStats returns the persisted stats blob for ?date=YYYY-MM-DD.
func (h *Handler) CachedStats(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.ready(w, r, nethttp.MethodGet) {
		return
	}
	day, err := timeutil.ParseDay(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}
	entry, ok := h.session.CachedStats(r.Context(), day)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no cached stats for date", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, entry, h.logger)
}

func (h *Handler) ready(w nethttp.ResponseWriter, r *nethttp.Request, method string) bool {
	if !requireMethod(w, r, method, h.logger) {
		return false
	}
	if h.session == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "session not configured", h.logger)
		return false
	}
	return true
}

func (h *Handler) writeSessionError(w nethttp.ResponseWriter, r *nethttp.Request, err error, logger *slog.Logger) {
	status := statusForError(err)
	if status >= nethttp.StatusInternalServerError {
		logging.Warn(logger, "session request failed", logging.FieldPath, r.URL.Path, "error", err)
	}
	writeError(w, r, status, err.Error(), logger)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrGameNotFound):
		return nethttp.StatusNotFound
	case errors.Is(err, session.ErrSuperseded):
		return nethttp.StatusConflict
	case errors.Is(err, session.ErrClosed), errors.Is(err, session.ErrScheduleLoading):
		return nethttp.StatusServiceUnavailable
	}
	if _, ok := providers.AsFetchError(err); ok {
		return nethttp.StatusBadGateway
	}
	return nethttp.StatusInternalServerError
}

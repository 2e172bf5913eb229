package nbaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-schedule-view/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-view/internal/domain/stats"
	"github.com/preston-bernstein/nba-schedule-view/internal/providers"
	"github.com/preston-bernstein/nba-schedule-view/internal/timeutil"
)

// Config controls how the client reaches the upstream schedule/boxscore API.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches schedules and box scores and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string {
	return sourceName
}

// FetchSchedule retrieves the full league schedule.
func (c *Client) FetchSchedule(ctx context.Context) (domaingames.Schedule, error) {
	var payload scheduleResponse
	if err := c.getJSON(ctx, providers.OpSchedule, schedulePath, &payload); err != nil {
		return domaingames.Schedule{}, err
	}
	sched, err := mapSchedule(payload)
	if err != nil {
		return domaingames.Schedule{}, c.fetchError(providers.OpSchedule, 0, err)
	}
	return sched, nil
}

// FetchGamesForDate retrieves the games scheduled on day.
func (c *Client) FetchGamesForDate(ctx context.Context, day timeutil.Day) ([]domaingames.Game, error) {
	var payload gamesByDateResponse
	if err := c.getJSON(ctx, providers.OpGamesForDate, gamesByDatePath+day.String(), &payload); err != nil {
		return nil, err
	}
	if payload.Games == nil {
		return nil, c.fetchError(providers.OpGamesForDate, 0, fmt.Errorf("%w: missing games", providers.ErrMalformedPayload))
	}
	list, err := mapGames(*payload.Games)
	if err != nil {
		return nil, c.fetchError(providers.OpGamesForDate, 0, err)
	}
	return list, nil
}

// FetchGameStats retrieves the advanced box score for one game.
func (c *Client) FetchGameStats(ctx context.Context, gameID string) (stats.BoxScore, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return stats.BoxScore{}, c.fetchError(providers.OpGameStats, 0, fmt.Errorf("game id required"))
	}
	var payload boxScoreResponse
	if err := c.getJSON(ctx, providers.OpGameStats, gameStatsPath+url.PathEscape(gameID), &payload); err != nil {
		return stats.BoxScore{}, err
	}
	box, err := mapBoxScore(payload)
	if err != nil {
		return stats.BoxScore{}, c.fetchError(providers.OpGameStats, 0, err)
	}
	return box, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, dest any) error {
	req, err := c.buildRequest(ctx, path)
	if err != nil {
		return c.fetchError(op, 0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fetchError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return c.fetchError(op, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return c.fetchError(op, resp.StatusCode, fmt.Errorf("%w: %v", providers.ErrMalformedPayload, err))
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) fetchError(op string, status int, err error) error {
	return &providers.FetchError{Source: sourceName, Op: op, StatusCode: status, Err: err}
}

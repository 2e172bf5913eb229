package config

import "time"

const (
	envPort          = "PORT"
	envSource        = "SOURCE"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envCORSOrigins   = "CORS_ALLOWED_ORIGINS"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envTimezone      = "TIMEZONE"
	envPageSize      = "PAGE_SIZE"
	envStatsLimit    = "STATS_CONCURRENCY"
	envPrefetch      = "SCHEDULE_PREFETCH"
	envStorage       = "STORAGE_BACKEND"
	envStorageFile   = "STORAGE_FILE_PATH"
	envSQLitePath    = "SQLITE_PATH"
	envRedisURL      = "REDIS_URL"
	envRedisPrefix   = "REDIS_KEY_PREFIX"
	envDatabaseURL   = "DATABASE_URL"
	envStoreTimeout  = "STORAGE_CONNECT_TIMEOUT"
	envNBAAPIBaseURL = "NBA_API_BASE_URL"
	envNBAAPIKey     = "NBA_API_KEY"
	envNBAAPITimeout = "NBA_API_TIMEOUT"

	defaultPort        = "4000"
	defaultSource      = "fixture"
	defaultMetricsPort = "9090"
	defaultCORSOrigins = "http://localhost:3000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultTimezone    = "America/New_York"
	defaultPageSize    = 6
	// Enough to cover a full slate (15 games) in two waves without hammering the stats API.
	defaultStatsConcurrency = 0
	defaultPrefetch         = true
	defaultStorage          = "file"
	defaultStorageFile      = "data/state.json"
	defaultSQLitePath       = "data/state.db"
	defaultRedisPrefix      = "nba-schedule-view:"
	defaultStoreTimeout     = 5 * time.Second
	defaultNBAAPIBaseURL    = "http://127.0.0.1:5000"
	defaultNBAAPITimeout    = 10 * time.Second
)

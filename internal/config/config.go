package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Source      string
	AdminToken  string
	CORSOrigins []string
	NBAAPI      NBAAPIConfig
	Pipeline    PipelineConfig
	Storage     StorageConfig
	Metrics     MetricsConfig
	Log         LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Source:      strings.ToLower(strings.TrimSpace(envOrDefault(envSource, defaultSource))),
		AdminToken:  envOrDefault(envAdminToken, ""),
		CORSOrigins: splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		NBAAPI:      loadNBAAPI(),
		Pipeline:    loadPipeline(),
		Storage:     loadStorage(),
		Metrics:     loadMetrics(),
		Log:         loadLog(),
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env") without
// overriding variables already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

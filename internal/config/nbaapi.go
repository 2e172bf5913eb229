package config

import "time"

// NBAAPIConfig controls how we talk to the NBA stats proxy.
type NBAAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func loadNBAAPI() NBAAPIConfig {
	return NBAAPIConfig{
		BaseURL: envOrDefault(envNBAAPIBaseURL, defaultNBAAPIBaseURL),
		APIKey:  envOrDefault(envNBAAPIKey, ""),
		Timeout: durationEnvOrDefault(envNBAAPITimeout, defaultNBAAPITimeout),
	}
}

package config

import (
	"strings"
	"time"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// StorageConfig selects where the selected date and stats cache are kept.
type StorageConfig struct {
	Backend        string
	FilePath       string
	SQLitePath     string
	RedisURL       string
	RedisPrefix    string
	DatabaseURL    string
	ConnectTimeout time.Duration
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Backend:        strings.ToLower(strings.TrimSpace(envOrDefault(envStorage, defaultStorage))),
		FilePath:       envOrDefault(envStorageFile, defaultStorageFile),
		SQLitePath:     envOrDefault(envSQLitePath, defaultSQLitePath),
		RedisURL:       envOrDefault(envRedisURL, ""),
		RedisPrefix:    envOrDefault(envRedisPrefix, defaultRedisPrefix),
		DatabaseURL:    envOrDefault(envDatabaseURL, ""),
		ConnectTimeout: durationEnvOrDefault(envStoreTimeout, defaultStoreTimeout),
	}
}

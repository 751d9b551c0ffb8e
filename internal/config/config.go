package config

import (
	"errors"
	"time"

	"github.com/dracory/env"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port        int
	GinMode     string
	LogLevel    string
	SeqURL      string
	DatabaseURL string
	DBConfig    DBConfig

	// EnvFileLoaded is false when no .env file could be read.
	EnvFileLoaded bool

	// SurfaceRowErrors makes GetRow, CreateRow and DeleteRow report
	// database failures as 500 instead of logging them and carrying on.
	SurfaceRowErrors bool
}

// DBConfig holds database pool settings.
type DBConfig struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// Load reads the environment, after merging in the given .env files.
// Variables already set in the environment win over the files.
// A missing .env file is not fatal.
func Load(files ...string) (*Config, error) {
	envErr := godotenv.Load(files...)

	cfg := &Config{
		Port:        env.GetIntOrDefault("PORT", 8080),
		GinMode:     env.GetStringOrDefault("GIN_MODE", "release"),
		LogLevel:    env.GetStringOrDefault("LOG_LEVEL", "info"),
		SeqURL:      env.GetStringOrDefault("SEQ_URL", ""),
		DatabaseURL: env.GetStringOrDefault("DATABASE_URL", ""),
		DBConfig: DBConfig{
			MaxOpenConns:    env.GetIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: time.Duration(env.GetIntOrDefault("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
		},
		SurfaceRowErrors: env.GetBoolOrDefault("SURFACE_ROW_ERRORS", false),
		EnvFileLoaded:    envErr == nil,
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}

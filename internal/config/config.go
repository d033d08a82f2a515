// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr                string
	AllowedOrigins      []string
	LogLevel            zerolog.Level
	MatchmakingInterval time.Duration
}

const (
	defaultAddr                = ":3000"
	defaultAllowedOrigins      = "http://localhost:5173"
	defaultLogLevel            = "info"
	defaultMatchmakingInterval = "1s"
)

// Load reads the given .env files (default ".env") when present and then
// the CHESS_* environment variables. Variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, f, err)
		}
	}

	level, err := zerolog.ParseLevel(getenv("CHESS_LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%w: CHESS_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}

	interval, err := time.ParseDuration(getenv("CHESS_MATCHMAKING_INTERVAL", defaultMatchmakingInterval))
	if err != nil {
		return Config{}, fmt.Errorf("%w: CHESS_MATCHMAKING_INTERVAL: %v", ErrInvalidConfig, err)
	}
	if interval <= 0 {
		return Config{}, fmt.Errorf("%w: CHESS_MATCHMAKING_INTERVAL must be positive", ErrInvalidConfig)
	}

	var origins []string
	for _, o := range strings.Split(getenv("CHESS_ALLOWED_ORIGINS", defaultAllowedOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return Config{}, fmt.Errorf("%w: CHESS_ALLOWED_ORIGINS is empty", ErrInvalidConfig)
	}

	return Config{
		Addr:                getenv("CHESS_ADDR", defaultAddr),
		AllowedOrigins:      origins,
		LogLevel:            level,
		MatchmakingInterval: interval,
	}, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Package config loads process configuration by layering defaults, an
// optional YAML file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// ListenAddr configures the HTTP listen address, e.g. ":8080".
	ListenAddr string `koanf:"listen_addr"`

	// RedisAddr selects the Redis backend; empty means the in-memory store.
	RedisAddr string `koanf:"redis_addr"`

	// KeyPrefix namespaces every Redis key this service writes.
	KeyPrefix string `koanf:"key_prefix"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LeaderboardSize is the board length served when no limit is given.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// AdminListLimit caps the admin board listing.
	AdminListLimit int `koanf:"admin_list_limit"`

	// RateLimitPerMinute bounds increments per client per minute; 0 disables
	// the limiter.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// AdminJWTSecret enables the admin bearer-token guard when non-empty.
	AdminJWTSecret string `koanf:"admin_jwt_secret"`

	// AdminJWTIssuer, when set, must match the token's iss claim.
	AdminJWTIssuer string `koanf:"admin_jwt_issuer"`

	// GracefulShutdownTimeout bounds drain time on shutdown, in seconds.
	GracefulShutdownTimeout int `koanf:"graceful_shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:              ":8080",
		KeyPrefix:               "banana",
		LogLevel:                "info",
		LeaderboardSize:         10,
		MaxLeaderboardLimit:     100,
		AdminListLimit:          1000,
		RateLimitPerMinute:      120,
		GracefulShutdownTimeout: 15,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if BANANA_CONFIG is set
//  3. env (prefix BANANA_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("BANANA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Map env keys like BANANA_REDIS_ADDR -> redis_addr (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BANANA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "banana_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	if c.KeyPrefix == "" {
		return errors.New("key_prefix must not be empty")
	}
	if c.LeaderboardSize < 1 {
		return errors.New("leaderboard_size must be at least 1")
	}
	if c.MaxLeaderboardLimit < c.LeaderboardSize {
		return errors.New("max_leaderboard_limit must be at least leaderboard_size")
	}
	if c.AdminListLimit < 1 {
		return errors.New("admin_list_limit must be at least 1")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("rate_limit_per_minute must not be negative")
	}
	if c.GracefulShutdownTimeout < 1 {
		return errors.New("graceful_shutdown_timeout must be at least 1 second")
	}
	return nil
}

// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// --------------------------------------------------------------------------
// Table names, single source of truth, matches internal/db/schema.sql
// --------------------------------------------------------------------------

const (
	UsersTable          = "users"
	RosterTable         = "roster_entries"
	PlayerProfilesTable = "player_profiles"
	CommentsTable       = "profile_comments"
	SnapshotsTable      = "stat_snapshots"
	PlayersTable        = "players"
	RevokedTokensTable  = "revoked_tokens"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	DBPoolMinConns int           `envconfig:"DB_POOL_MIN_CONNS" default:"2"`
	DBPoolMaxConns int           `envconfig:"DB_POOL_MAX_CONNS" default:"10"`
	DBPoolMaxLife  time.Duration `envconfig:"DB_POOL_MAX_LIFE" default:"30m"`

	// API server
	APIHost     string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort     int    `envconfig:"API_PORT" default:"8000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // development, staging, production
	Debug       bool   `envconfig:"DEBUG" default:"false"`

	// CORS
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Rate limiting
	RateLimitEnabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	// stats.nba.com
	NBAStatsBaseURL           string        `envconfig:"NBA_STATS_BASE_URL" default:"https://stats.nba.com/stats"`
	NBAStatsRequestsPerMinute int           `envconfig:"NBA_STATS_REQUESTS_PER_MINUTE" default:"30"`
	NBAStatsTimeout           time.Duration `envconfig:"NBA_STATS_TIMEOUT" default:"30s"`
	CurrentSeason             string        `envconfig:"NBA_CURRENT_SEASON" default:"2024-25"`

	// Cache
	CacheEnabled bool   `envconfig:"CACHE_ENABLED" default:"true"`
	RedisURL     string `envconfig:"REDIS_URL"`

	// Auth
	JWTSecret string        `envconfig:"AUTH_JWT_SECRET" required:"true"`
	JWTIssuer string        `envconfig:"AUTH_JWT_ISSUER" default:"courtside"`
	JWTExpiry time.Duration `envconfig:"AUTH_JWT_EXPIRY" default:"24h"`

	// Maintenance
	DirectoryRefreshInterval time.Duration `envconfig:"DIRECTORY_REFRESH_INTERVAL" default:"24h"`
	SnapshotRetention        time.Duration `envconfig:"SNAPSHOT_RETENTION" default:"0s"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("NEON_DATABASE_URL", "")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or NEON_DATABASE_URL must be set")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must not be empty")
	}

	// Hosting platforms inject PORT; API_PORT wins when both are set.
	if os.Getenv("API_PORT") == "" {
		cfg.APIPort = envInt("PORT", cfg.APIPort)
	}

	if cfg.NBAStatsRequestsPerMinute <= 0 {
		return nil, fmt.Errorf("NBA_STATS_REQUESTS_PER_MINUTE must be positive, got %d", cfg.NBAStatsRequestsPerMinute)
	}

	return &cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

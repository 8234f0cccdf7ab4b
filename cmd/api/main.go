// Command api is the Courtside API server.
//
// Usage:
//
//	courtside-api
//	API_PORT=8080 courtside-api

// @title Courtside API
// @version 1.0.0
// @description NBA player stats: career totals, per-game rates, season breakdowns, rosters and player profiles.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Courtside
// @license.name MIT
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/courtside/internal/api"
	"github.com/albapepper/courtside/internal/api/handler"
	"github.com/albapepper/courtside/internal/auth"
	"github.com/albapepper/courtside/internal/cache"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/directory"
	"github.com/albapepper/courtside/internal/maintenance"
	"github.com/albapepper/courtside/internal/provider/nbastats"
	"github.com/albapepper/courtside/internal/store"

	_ "github.com/albapepper/courtside/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	profiles := store.New(pool)

	// Response cache: Redis when configured, otherwise in-process
	appCache := newCache(ctx, cfg, logger)

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
	if err != nil {
		logger.Error("Failed to configure auth", "error", err)
		os.Exit(1)
	}

	nba := nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRequestsPerMinute, cfg.NBAStatsTimeout, logger)

	// Player index: stored copy first, then a provider refresh if empty
	dir := directory.New()
	if n, err := dir.LoadFromStore(ctx, profiles); err != nil {
		logger.Warn("Failed to load player index", "error", err)
	} else {
		logger.Info("Player index loaded", "players", n)
	}
	if dir.Len() == 0 {
		go func() {
			if _, err := dir.Refresh(ctx, nba, profiles, cfg.CurrentSeason, logger); err != nil {
				logger.Warn("Initial player index refresh failed", "error", err)
			}
		}()
	}

	// Start maintenance jobs (index refresh, retention pruning)
	mcfg := maintenance.DefaultConfig()
	mcfg.DirectoryRefreshInterval = cfg.DirectoryRefreshInterval
	mcfg.SnapshotRetention = cfg.SnapshotRetention
	mcfg.Season = cfg.CurrentSeason
	go func() {
		deps := maintenance.Deps{Directory: dir, Source: nba, Store: profiles}
		if err := maintenance.Start(ctx, deps, mcfg, logger); err != nil {
			logger.Error("Maintenance scheduler failed", "error", err)
		}
	}()

	router := api.NewRouter(handler.Deps{
		Provider:  nba,
		Store:     profiles,
		DB:        pool,
		Cache:     appCache,
		Directory: dir,
		Auth:      issuer,
		Logger:    logger,
	}, profiles, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.NBAStatsTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Courtside API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// newCache picks the Redis tier when REDIS_URL is set and reachable.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) cache.Store {
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
		if err == nil {
			logger.Info("Cache initialized", "backend", "redis")
			go func() {
				<-ctx.Done()
				rc.Close()
			}()
			return rc
		}
		logger.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
	}
	mc := cache.New(cfg.CacheEnabled)
	go func() {
		<-ctx.Done()
		mc.Close()
	}()
	logger.Info("Cache initialized", "backend", "memory", "enabled", cfg.CacheEnabled)
	return mc
}

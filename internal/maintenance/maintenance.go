// Package maintenance runs periodic background jobs on a gocron scheduler:
// refreshing the player index and pruning expired snapshots and revoked
// tokens.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/albapepper/courtside/internal/directory"
)

// Config controls job intervals. Zero duration disables a job.
type Config struct {
	DirectoryRefreshInterval time.Duration
	PruneInterval            time.Duration // snapshots + revoked tokens
	SnapshotRetention        time.Duration // zero keeps snapshots forever
	Season                   string
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		DirectoryRefreshInterval: 24 * time.Hour,
		PruneInterval:            1 * time.Hour,
	}
}

// Store is what the jobs need from the profile store.
type Store interface {
	directory.Store
	Pruner
}

// Deps bundles the collaborators the jobs act on.
type Deps struct {
	Directory *directory.Directory
	Source    directory.Source
	Store     Store
}

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)
}

// jobs lists the enabled jobs for cfg.
func jobs(deps Deps, cfg Config, logger *slog.Logger) []job {
	var out []job
	if cfg.DirectoryRefreshInterval > 0 && deps.Directory != nil && deps.Source != nil {
		out = append(out, job{
			name:     "directory-refresh",
			interval: cfg.DirectoryRefreshInterval,
			run: func(ctx context.Context) {
				if _, err := deps.Directory.Refresh(ctx, deps.Source, deps.Store, cfg.Season, logger); err != nil {
					logger.Warn("Directory refresh failed", "error", err)
				}
			},
		})
	}
	if cfg.PruneInterval > 0 && deps.Store != nil {
		out = append(out, job{
			name:     "prune",
			interval: cfg.PruneInterval,
			run: func(ctx context.Context) {
				Prune(ctx, deps.Store, cfg.SnapshotRetention, time.Now(), logger)
			},
		})
	}
	return out
}

// Start schedules all configured jobs and blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, deps Deps, cfg Config, logger *slog.Logger) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	for _, j := range jobs(deps, cfg, logger) {
		run := j.run
		_, err := s.NewJob(
			gocron.DurationJob(j.interval),
			gocron.NewTask(func() { run(ctx) }),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}

	s.Start()
	logger.Info("Maintenance scheduler started",
		"directory_refresh", cfg.DirectoryRefreshInterval,
		"prune", cfg.PruneInterval,
		"snapshot_retention", cfg.SnapshotRetention)

	<-ctx.Done()
	if err := s.Shutdown(); err != nil {
		logger.Warn("Maintenance scheduler shutdown", "error", err)
	}
	logger.Info("Maintenance scheduler stopped")
	return nil
}

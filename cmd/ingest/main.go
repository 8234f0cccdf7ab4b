// Command ingest is the Courtside admin CLI.
//
// Usage:
//
//	courtside-ingest schema apply
//	courtside-ingest schema print
//	courtside-ingest players --season 2024-25
//	courtside-ingest career --player 2544 --option "Reg. Season"
//	courtside-ingest prune --retention 720h
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/directory"
	"github.com/albapepper/courtside/internal/maintenance"
	"github.com/albapepper/courtside/internal/provider/nbastats"
	"github.com/albapepper/courtside/internal/stats"
	"github.com/albapepper/courtside/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "courtside-ingest",
		Short: "Courtside admin CLI",
	}

	root.AddCommand(schemaCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(careerCmd())
	root.AddCommand(pruneCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := db.ApplySchema(ctx, cfg); err != nil {
				return err
			}
			logger.Info("Schema applied")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the schema SQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
			return err
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// players command
// --------------------------------------------------------------------------

func playersCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Refresh the player index from stats.nba.com",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if season == "" {
					season = cfg.CurrentSeason
				}
				client := newClient(cfg)
				start := time.Now()
				n, err := directory.New().Refresh(ctx, client, store.New(pool), season, logger)
				if err != nil {
					return err
				}
				logger.Info("Player index stored", "players", n, "duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season (e.g. 2024-25); defaults to NBA_CURRENT_SEASON")
	return cmd
}

// --------------------------------------------------------------------------
// career command
// --------------------------------------------------------------------------

func careerCmd() *cobra.Command {
	var (
		playerID int
		option   string
	)
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Print a player's career rates and season breakdown as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID <= 0 {
				return fmt.Errorf("--player is required")
			}
			category, err := stats.ParseSeasonCategory(option)
			if err != nil {
				return fmt.Errorf("--option %q: %w", option, err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			career, err := newClient(cfg).PlayerCareerStats(ctx, playerID)
			if err != nil {
				return err
			}
			totals, _ := stats.CareerTotals(career.CareerTotalsRegularSeason)
			selection := stats.Select(category, career.SeasonTotalsRegularSeason, career.SeasonTotalsPostSeason)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"player_id":       playerID,
				"career_stats":    totals,
				"career_per_game": stats.CareerRates(totals),
				"selection":       selection,
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "player", 0, "NBA player ID")
	cmd.Flags().StringVar(&option, "option", "", `Season category ("Reg. Season" or "Post Season")`)
	return cmd
}

// --------------------------------------------------------------------------
// prune command
// --------------------------------------------------------------------------

func pruneCmd() *cobra.Command {
	var retention time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old snapshots and expired token revocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if !cmd.Flags().Changed("retention") {
					retention = cfg.SnapshotRetention
				}
				res := maintenance.Prune(ctx, store.New(pool), retention, time.Now(), logger)
				logger.Info("Prune finished", "snapshots", res.Snapshots, "revocations", res.Tokens)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&retention, "retention", 0, "Delete snapshots older than this; defaults to SNAPSHOT_RETENTION, 0 keeps all")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newClient(cfg *config.Config) *nbastats.Client {
	return nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRequestsPerMinute, cfg.NBAStatsTimeout, logger)
}

// runWithDB handles config loading, DB connection, and context cancellation.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/courtside/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// ApplySchema creates any missing tables and indexes. Prepared statements
// referencing new tables fail on connections opened before the schema
// existed, so run this from the CLI before starting the API.
func ApplySchema(ctx context.Context, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Schema returns the embedded schema, for printing from the CLI.
func Schema() string {
	return schemaSQL
}

// Statements lists every prepared statement by name. The store package
// refers to statements by these names only.
var Statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Users
	"user_insert":      "INSERT INTO " + config.UsersTable + " (username, email, password_hash, favorite_team) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
	"user_by_username": "SELECT id, username, email, password_hash, COALESCE(favorite_team, ''), created_at FROM " + config.UsersTable + " WHERE username = $1",
	"user_by_id":       "SELECT id, username, email, password_hash, COALESCE(favorite_team, ''), created_at FROM " + config.UsersTable + " WHERE id = $1",

	// Roster
	"roster_insert": "INSERT INTO " + config.RosterTable + " (user_id, player_id, player_name, player_image_url) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
	"roster_exists": "SELECT EXISTS (SELECT 1 FROM " + config.RosterTable + " WHERE user_id = $1 AND player_id = $2)",
	"roster_list":   "SELECT id, user_id, player_id, player_name, player_image_url, created_at FROM " + config.RosterTable + " WHERE user_id = $1 ORDER BY created_at, id",
	"roster_delete": "DELETE FROM " + config.RosterTable + " WHERE user_id = $1 AND player_id = $2",

	// Cached player profiles
	"profile_upsert": `INSERT INTO ` + config.PlayerProfilesTable + ` (player_id, player_name, player_image_url, background_colour)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			player_image_url = EXCLUDED.player_image_url,
			background_colour = COALESCE(EXCLUDED.background_colour, ` + config.PlayerProfilesTable + `.background_colour),
			updated_at = NOW()
		RETURNING player_id, player_name, player_image_url, COALESCE(background_colour, '#FFFFFF'), updated_at`,
	"profile_by_id": "SELECT player_id, player_name, player_image_url, COALESCE(background_colour, '#FFFFFF'), updated_at FROM " + config.PlayerProfilesTable + " WHERE player_id = $1",

	// Comments
	"comment_insert": "INSERT INTO " + config.CommentsTable + " (player_id, user_id, body) VALUES ($1, $2, $3) RETURNING id, created_at",
	"comment_list": `SELECT c.id, c.player_id, c.user_id, u.username, c.body, c.created_at
		FROM ` + config.CommentsTable + ` c JOIN ` + config.UsersTable + ` u ON u.id = c.user_id
		WHERE c.player_id = $1 ORDER BY c.created_at DESC, c.id DESC LIMIT $2`,

	// Snapshots
	"snapshot_insert": "INSERT INTO " + config.SnapshotsTable + " (player_id, user_id, label, payload) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
	"snapshot_list":   "SELECT id, player_id, user_id, label, payload, created_at FROM " + config.SnapshotsTable + " WHERE player_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
	"snapshot_prune":  "DELETE FROM " + config.SnapshotsTable + " WHERE created_at < $1",

	// Player index
	"player_upsert": `INSERT INTO ` + config.PlayersTable + ` (id, full_name, first_name, last_name, is_active, team_abbreviation, from_year, to_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_active = EXCLUDED.is_active,
			team_abbreviation = EXCLUDED.team_abbreviation,
			from_year = EXCLUDED.from_year,
			to_year = EXCLUDED.to_year,
			updated_at = NOW()`,
	"player_list": "SELECT id, full_name, COALESCE(first_name, ''), COALESCE(last_name, ''), is_active, COALESCE(team_abbreviation, ''), COALESCE(from_year, 0), COALESCE(to_year, 0) FROM " + config.PlayersTable + " ORDER BY id",

	// Token revocation
	"token_revoke":     "INSERT INTO " + config.RevokedTokensTable + " (jti, user_id, expires_at) VALUES ($1, $2, $3) ON CONFLICT (jti) DO NOTHING",
	"token_is_revoked": "SELECT EXISTS (SELECT 1 FROM " + config.RevokedTokensTable + " WHERE jti = $1)",
	"token_prune":      "DELETE FROM " + config.RevokedTokensTable + " WHERE expires_at < NOW()",
}

// registerPreparedStatements registers all statements the API and CLI use.
// Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

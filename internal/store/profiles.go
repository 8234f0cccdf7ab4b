package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Defaults for cached profiles, used when the provider has nothing better.
const (
	DefaultPlayerName       = "N/A"
	DefaultPlayerImageURL   = "https://via.placeholder.com/150"
	DefaultBackgroundColour = "#FFFFFF"
)

// PlayerProfile is the locally cached copy of a player's name and headshot
// that comments and snapshots hang off.
type PlayerProfile struct {
	PlayerID         int       `json:"player_id"`
	PlayerName       string    `json:"player_name"`
	PlayerImageURL   string    `json:"player_image_url"`
	BackgroundColour string    `json:"background_colour"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Comment is a user's note on a player profile.
type Comment struct {
	ID        int64     `json:"id"`
	PlayerID  int       `json:"player_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot freezes a player's stats at a point in time. Payload is the JSON
// document captured by the caller.
type Snapshot struct {
	ID        int64           `json:"id"`
	PlayerID  int             `json:"player_id"`
	UserID    int64           `json:"user_id"`
	Label     string          `json:"label"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UpsertPlayerProfile creates or refreshes a cached profile, filling blanks
// with defaults. An empty background colour keeps the stored one.
func (s *Store) UpsertPlayerProfile(ctx context.Context, p PlayerProfile) (*PlayerProfile, error) {
	if p.PlayerName == "" {
		p.PlayerName = DefaultPlayerName
	}
	if p.PlayerImageURL == "" {
		p.PlayerImageURL = DefaultPlayerImageURL
	}

	var out PlayerProfile
	err := s.db.QueryRow(ctx, "profile_upsert", p.PlayerID, p.PlayerName, p.PlayerImageURL, nilEmpty(p.BackgroundColour)).
		Scan(&out.PlayerID, &out.PlayerName, &out.PlayerImageURL, &out.BackgroundColour, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert profile %d: %w", p.PlayerID, mapErr(err))
	}
	return &out, nil
}

// PlayerProfile returns a cached profile or ErrNotFound.
func (s *Store) PlayerProfile(ctx context.Context, playerID int) (*PlayerProfile, error) {
	var p PlayerProfile
	err := s.db.QueryRow(ctx, "profile_by_id", playerID).
		Scan(&p.PlayerID, &p.PlayerName, &p.PlayerImageURL, &p.BackgroundColour, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// AddComment attaches a comment to a cached profile.
func (s *Store) AddComment(ctx context.Context, playerID int, userID int64, body string) (*Comment, error) {
	c := &Comment{PlayerID: playerID, UserID: userID, Body: body}
	if err := s.db.QueryRow(ctx, "comment_insert", playerID, userID, body).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert comment: %w", mapErr(err))
	}
	return c, nil
}

// ListComments returns the newest comments on a profile first.
func (s *Store) ListComments(ctx context.Context, playerID, limit int) ([]Comment, error) {
	rows, err := s.db.Query(ctx, "comment_list", playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.UserID, &c.Username, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// AddSnapshot stores a stat snapshot on a cached profile.
func (s *Store) AddSnapshot(ctx context.Context, playerID int, userID int64, label string, payload json.RawMessage) (*Snapshot, error) {
	snap := &Snapshot{PlayerID: playerID, UserID: userID, Label: label, Payload: payload}
	if err := s.db.QueryRow(ctx, "snapshot_insert", playerID, userID, label, []byte(payload)).Scan(&snap.ID, &snap.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", mapErr(err))
	}
	return snap, nil
}

// ListSnapshots returns the newest snapshots on a profile first.
func (s *Store) ListSnapshots(ctx context.Context, playerID, limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(ctx, "snapshot_list", playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		var payload []byte
		if err := rows.Scan(&snap.ID, &snap.PlayerID, &snap.UserID, &snap.Label, &payload, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Payload = json.RawMessage(payload)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// PruneSnapshots deletes snapshots created before the cutoff.
func (s *Store) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "snapshot_prune", before)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

package store

import (
	"context"
	"fmt"
	"time"
)

// RosterEntry is a player saved to a user's roster.
type RosterEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	PlayerID       int       `json:"player_id"`
	PlayerName     string    `json:"player_name"`
	PlayerImageURL string    `json:"player_image_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddRosterEntry saves a player to a user's roster. Adding the same player
// twice returns ErrDuplicate.
func (s *Store) AddRosterEntry(ctx context.Context, userID int64, playerID int, name, imageURL string) (*RosterEntry, error) {
	exists, err := s.RosterExists(ctx, userID, playerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("roster entry %d/%d: %w", userID, playerID, ErrDuplicate)
	}

	e := &RosterEntry{
		UserID:         userID,
		PlayerID:       playerID,
		PlayerName:     name,
		PlayerImageURL: imageURL,
	}
	err = s.db.QueryRow(ctx, "roster_insert", userID, playerID, name, imageURL).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		// A concurrent add can still win the race past the existence check.
		return nil, fmt.Errorf("insert roster entry %d/%d: %w", userID, playerID, mapErr(err))
	}
	return e, nil
}

// RosterExists reports whether the player is already on the user's roster.
func (s *Store) RosterExists(ctx context.Context, userID int64, playerID int) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, "roster_exists", userID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check roster entry: %w", mapErr(err))
	}
	return exists, nil
}

// ListRoster returns a user's roster in the order players were added.
func (s *Store) ListRoster(ctx context.Context, userID int64) ([]RosterEntry, error) {
	rows, err := s.db.Query(ctx, "roster_list", userID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	entries := []RosterEntry{}
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.PlayerID, &e.PlayerName, &e.PlayerImageURL, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}
	return entries, nil
}

// RemoveRosterEntry deletes a player from a user's roster. Returns
// ErrNotFound when the player was not on it.
func (s *Store) RemoveRosterEntry(ctx context.Context, userID int64, playerID int) error {
	tag, err := s.db.Exec(ctx, "roster_delete", userID, playerID)
	if err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

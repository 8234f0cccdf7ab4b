package store

import (
	"context"
	"fmt"
	"time"
)

// User is an account. FavoriteTeam is optional and empty when unset.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FavoriteTeam string    `json:"favorite_team,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser inserts a user. A taken username returns ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, favoriteTeam string) (*User, error) {
	u := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FavoriteTeam: favoriteTeam,
	}
	err := s.db.QueryRow(ctx, "user_insert", username, email, passwordHash, nilEmpty(favoriteTeam)).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", username, mapErr(err))
	}
	return u, nil
}

// UserByUsername looks up a user for login.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRow(ctx, "user_by_username", username))
}

// UserByID looks up the user behind an access token.
func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	return s.scanUser(s.db.QueryRow(ctx, "user_by_id", id))
}

func (s *Store) scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FavoriteTeam, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

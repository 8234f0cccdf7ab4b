package store

import (
	"context"
	"fmt"
	"time"
)

// RevokeToken records a logged-out token id until it would have expired.
func (s *Store) RevokeToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	if _, err := s.db.Exec(ctx, "token_revoke", jti, userID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id was revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	if err := s.db.QueryRow(ctx, "token_is_revoked", jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}

// PruneRevokedTokens drops revocations whose tokens have expired anyway.
func (s *Store) PruneRevokedTokens(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, "token_prune")
	if err != nil {
		return 0, fmt.Errorf("prune revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

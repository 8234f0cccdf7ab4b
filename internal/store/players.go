package store

import (
	"context"
	"fmt"

	"github.com/albapepper/courtside/internal/provider"
)

// UpsertPlayers writes the player index. It stops at the first failure and
// reports how many rows were written before it.
func (s *Store) UpsertPlayers(ctx context.Context, players []provider.PlayerSummary) (int, error) {
	for i, p := range players {
		_, err := s.db.Exec(ctx, "player_upsert",
			p.ID, p.FullName, nilEmpty(p.FirstName), nilEmpty(p.LastName),
			p.IsActive, nilEmpty(p.TeamAbbr), nilZero(p.FromYear), nilZero(p.ToYear))
		if err != nil {
			return i, fmt.Errorf("upsert player %d: %w", p.ID, err)
		}
	}
	return len(players), nil
}

// ListPlayers returns the stored player index ordered by id.
func (s *Store) ListPlayers(ctx context.Context) ([]provider.PlayerSummary, error) {
	rows, err := s.db.Query(ctx, "player_list")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []provider.PlayerSummary
	for rows.Next() {
		var p provider.PlayerSummary
		if err := rows.Scan(&p.ID, &p.FullName, &p.FirstName, &p.LastName, &p.IsActive, &p.TeamAbbr, &p.FromYear, &p.ToYear); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

func nilZero(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

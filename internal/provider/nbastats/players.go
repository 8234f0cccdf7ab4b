package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/albapepper/courtside/internal/provider"
	"github.com/albapepper/courtside/internal/stats"
)

const (
	headshotURLFormat   = "https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png"
	PlaceholderHeadshot = "https://via.placeholder.com/150"
)

// HeadshotURL returns the nba.com CDN headshot for a player.
func HeadshotURL(playerID int) string {
	if playerID <= 0 {
		return PlaceholderHeadshot
	}
	return fmt.Sprintf(headshotURLFormat, playerID)
}

// --------------------------------------------------------------------------
// Career stats
// --------------------------------------------------------------------------

// PlayerCareerStats fetches season and career totals for a player. Missing
// result sets yield empty lists; a player with no games has no career totals.
func (c *Client) PlayerCareerStats(ctx context.Context, playerID int) (*provider.CareerStats, error) {
	if playerID <= 0 {
		return nil, ErrInvalidPlayerID
	}
	params := url.Values{
		"PlayerID": {strconv.Itoa(playerID)},
		"PerMode":  {"Totals"},
		"LeagueID": {"00"},
	}

	resp, err := c.get(ctx, "playercareerstats", params)
	if err != nil {
		return nil, fmt.Errorf("fetch career stats for %d: %w", playerID, err)
	}

	return &provider.CareerStats{
		PlayerID:                  playerID,
		SeasonTotalsRegularSeason: toRecords(resp.set("SeasonTotalsRegularSeason")),
		CareerTotalsRegularSeason: toRecords(resp.set("CareerTotalsRegularSeason")),
		SeasonTotalsPostSeason:    toRecords(resp.set("SeasonTotalsPostSeason")),
		CareerTotalsPostSeason:    toRecords(resp.set("CareerTotalsPostSeason")),
	}, nil
}

// toRecords converts a result set into stat records, keeping header order.
// Null cells become null stats. Numeric cells, including numeric strings such
// as "82", become stats. Other text cells and any text in an identifier
// column ("SEASON_ID", "LEAGUE_ID") become labels.
func toRecords(rs resultSet) []stats.StatRecord {
	out := make([]stats.StatRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		var b stats.Builder
		for i, h := range rs.Headers {
			if i >= len(row) {
				b.Set(h, nil)
				continue
			}
			cell := row[i]
			if cell == nil {
				b.Set(h, nil)
				continue
			}
			text, isText := cell.(string)
			if isText && strings.HasSuffix(h, "_ID") {
				b.Label(h, text)
				continue
			}
			if v, ok := provider.ExtractValue(cell); ok {
				b.Set(h, &v)
				continue
			}
			if isText {
				b.Label(h, text)
			}
		}
		out = append(out, b.Build())
	}
	return out
}

// --------------------------------------------------------------------------
// Player info
// --------------------------------------------------------------------------

// PlayerInfo fetches display data for a player page.
func (c *Client) PlayerInfo(ctx context.Context, playerID int) (*provider.PlayerInfo, error) {
	if playerID <= 0 {
		return nil, ErrInvalidPlayerID
	}
	params := url.Values{
		"PlayerID": {strconv.Itoa(playerID)},
		"LeagueID": {"00"},
	}

	resp, err := c.get(ctx, "commonplayerinfo", params)
	if err != nil {
		return nil, fmt.Errorf("fetch player info for %d: %w", playerID, err)
	}

	rows := resp.set("CommonPlayerInfo").rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
	}
	row := rows[0]

	info := &provider.PlayerInfo{
		ID:          playerID,
		Name:        provider.ExtractString(row["DISPLAY_FIRST_LAST"]),
		FirstName:   provider.ExtractString(row["FIRST_NAME"]),
		LastName:    provider.ExtractString(row["LAST_NAME"]),
		Position:    provider.ExtractString(row["POSITION"]),
		TeamName:    provider.ExtractString(row["TEAM_NAME"]),
		TeamCity:    provider.ExtractString(row["TEAM_CITY"]),
		TeamAbbrev:  provider.ExtractString(row["TEAM_ABBREVIATION"]),
		Jersey:      provider.ExtractString(row["JERSEY"]),
		Height:      provider.ExtractString(row["HEIGHT"]),
		Weight:      provider.ExtractString(row["WEIGHT"]),
		Country:     provider.ExtractString(row["COUNTRY"]),
		HeadshotURL: HeadshotURL(playerID),
	}
	info.FromYear, _ = provider.ExtractInt(row["FROM_YEAR"])
	info.ToYear, _ = provider.ExtractInt(row["TO_YEAR"])
	if info.Name == "" {
		info.Name = strings.TrimSpace(info.FirstName + " " + info.LastName)
	}
	if info.Name == "" {
		info.Name = fmt.Sprintf("Player %d", playerID)
	}
	return info, nil
}

// --------------------------------------------------------------------------
// Player index
// --------------------------------------------------------------------------

// AllPlayers fetches every player in league history for the search index.
func (c *Client) AllPlayers(ctx context.Context, season string) ([]provider.PlayerSummary, error) {
	params := url.Values{
		"LeagueID":            {"00"},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"0"},
	}

	resp, err := c.get(ctx, "commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch all players: %w", err)
	}

	rows := resp.set("CommonAllPlayers").rows()
	players := make([]provider.PlayerSummary, 0, len(rows))
	for _, row := range rows {
		id, ok := provider.ExtractInt(row["PERSON_ID"])
		if !ok || id <= 0 {
			continue
		}
		p := normalizeSummary(id, row)
		players = append(players, p)
	}

	c.logger.Info("Fetched player index", "season", season, "count", len(players))
	return players, nil
}

func normalizeSummary(id int, row map[string]interface{}) provider.PlayerSummary {
	full := provider.ExtractString(row["DISPLAY_FIRST_LAST"])
	p := provider.PlayerSummary{
		ID:       id,
		FullName: full,
		TeamAbbr: provider.ExtractString(row["TEAM_ABBREVIATION"]),
	}
	p.FromYear, _ = provider.ExtractInt(row["FROM_YEAR"])
	p.ToYear, _ = provider.ExtractInt(row["TO_YEAR"])
	status, _ := provider.ExtractInt(row["ROSTERSTATUS"])
	p.IsActive = status == 1

	// DISPLAY_LAST_COMMA_FIRST is "James, LeBron"; single-name players have no comma.
	lastFirst := provider.ExtractString(row["DISPLAY_LAST_COMMA_FIRST"])
	if last, first, found := strings.Cut(lastFirst, ", "); found {
		p.FirstName, p.LastName = first, last
	} else {
		p.LastName = lastFirst
	}
	if p.FullName == "" {
		p.FullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return p
}

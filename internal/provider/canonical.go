// Package provider defines canonical data types that the stats provider
// normalizes into. These structs are the contract between the provider client
// and everything that consumes player data: handlers, the player directory
// and the ingest CLI.
package provider

import "github.com/albapepper/courtside/internal/stats"

// CareerStats is a player's career breakdown. Career totals hold zero or one
// record; season lists keep provider order.
type CareerStats struct {
	PlayerID                  int                `json:"player_id"`
	CareerTotalsRegularSeason []stats.StatRecord `json:"career_totals_regular_season"`
	CareerTotalsPostSeason    []stats.StatRecord `json:"career_totals_post_season"`
	SeasonTotalsRegularSeason []stats.StatRecord `json:"season_totals_regular_season"`
	SeasonTotalsPostSeason    []stats.StatRecord `json:"season_totals_post_season"`
}

// PlayerInfo is the display data for a player page.
type PlayerInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Position    string `json:"position,omitempty"`
	TeamName    string `json:"team_name,omitempty"`
	TeamCity    string `json:"team_city,omitempty"`
	TeamAbbrev  string `json:"team_abbreviation,omitempty"`
	Jersey      string `json:"jersey,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Country     string `json:"country,omitempty"`
	FromYear    int    `json:"from_year,omitempty"`
	ToYear      int    `json:"to_year,omitempty"`
	HeadshotURL string `json:"headshot_url"`
}

// PlayerSummary is one row of the league-wide player index used for search.
type PlayerSummary struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	TeamAbbr  string `json:"team_abbreviation,omitempty"`
	FromYear  int    `json:"from_year,omitempty"`
	ToYear    int    `json:"to_year,omitempty"`
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/cache"
	"github.com/albapepper/courtside/internal/directory"
	"github.com/albapepper/courtside/internal/provider"
	"github.com/albapepper/courtside/internal/stats"
)

// maxSearchResults caps the search result list.
const maxSearchResults = 25

// playerData is the provider payload behind a player page, cached as a unit.
type playerData struct {
	Info   *provider.PlayerInfo  `json:"info"`
	Career *provider.CareerStats `json:"career"`
}

// PlayerDetailsResponse is the player page: career totals and per-game
// rates plus the season breakdown chosen with the option parameter.
type PlayerDetailsResponse struct {
	PlayerID      int                      `json:"player_id"`
	PlayerName    string                   `json:"player_name"`
	HeadshotURL   string                   `json:"headshot_url"`
	Player        *provider.PlayerInfo     `json:"player"`
	CareerStats   *stats.StatRecord        `json:"career_stats"`
	CareerPerGame stats.Rates              `json:"career_per_game"`
	Options       []stats.Option           `json:"options"`
	Selected      string                   `json:"selected"`
	ChosenTitle   string                   `json:"chosen_title,omitempty"`
	ChosenStats   []stats.AggregatedRecord `json:"chosen_stats"`
	OptionError   string                   `json:"option_error,omitempty"`
}

// SearchPlayers lists players matching a name.
// @Summary Search players
// @Description Case-insensitive full-name match on the title-cased query, falling back to fuzzy ranking when nothing matches.
// @Tags players
// @Produce json
// @Param name query string true "Player name or part of it" maxlength(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse "Name missing or longer than 100 characters"
// @Router /api/v1/players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}

	players := h.dir.Search(name, maxSearchResults)
	resp := map[string]interface{}{
		"query":   name,
		"count":   len(players),
		"players": players,
	}
	if len(players) == 0 {
		resp["players"] = []provider.PlayerSummary{}
		resp["message"] = "No players found."
	}
	respond.WriteJSONObject(w, http.StatusOK, resp)
}

// LookupPlayer resolves a name to the first full-name match, for jumping
// straight to a player page.
// @Summary Look up a player
// @Description Returns the first player whose full name matches the title-cased query.
// @Tags players
// @Produce json
// @Param name query string true "Player name" maxlength(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse "Name missing or longer than 100 characters"
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/players/lookup [get]
func (h *Handler) LookupPlayer(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}

	matches := h.dir.FindByFullName(name)
	if len(matches) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No players found.")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"player_id": matches[0].ID,
		"player":    matches[0],
		"location":  fmt.Sprintf("/api/v1/players/%d", matches[0].ID),
	})
}

// nameParam reads the name query parameter, writing 400 when it is empty or
// longer than directory.MaxQueryLength characters.
func nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "Please enter a player name.")
		return "", false
	}
	if utf8.RuneCountInString(name) > directory.MaxQueryLength {
		respond.WriteError(w, http.StatusBadRequest, "NAME_TOO_LONG",
			fmt.Sprintf("Ensure this value has at most %d characters.", directory.MaxQueryLength))
		return "", false
	}
	return name, true
}

// GetPlayerDetails returns a player's career totals, career per-game rates
// and the season breakdown for the requested category.
// @Summary Get player details
// @Description Career totals and per-game rates. option selects the season breakdown; an unknown option is reported in option_error and treated as no selection.
// @Tags players
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Param option query string false "Season category" Enums(---, Reg. Season, Post Season)
// @Success 200 {object} PlayerDetailsResponse
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/players/{playerID} [get]
func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	pd, hit, err := h.loadPlayer(r.Context(), id)
	if err != nil {
		h.writeProviderError(w, id, err)
		return
	}

	option := r.URL.Query().Get("option")
	category, err := stats.ParseSeasonCategory(option)
	optionError := ""
	if err != nil {
		category = stats.Unselected
		optionError = fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", option)
	}

	resp := buildPlayerDetails(pd, category)
	resp.OptionError = optionError

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("Encoding player details failed", "player_id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode response")
		return
	}

	respond.WriteCached(w, r, respond.Cached{
		Body: body,
		ETag: cache.ComputeETag(body),
		TTL:  cache.TTLCareerStats,
		Hit:  hit,
	})
}

// buildPlayerDetails shapes provider data into the player page.
func buildPlayerDetails(pd *playerData, category stats.SeasonCategory) PlayerDetailsResponse {
	career := pd.Career
	totals, found := stats.CareerTotals(career.CareerTotalsRegularSeason)
	selection := stats.Select(category, career.SeasonTotalsRegularSeason, career.SeasonTotalsPostSeason)

	resp := PlayerDetailsResponse{
		PlayerID:      pd.Info.ID,
		PlayerName:    pd.Info.Name,
		HeadshotURL:   pd.Info.HeadshotURL,
		Player:        pd.Info,
		CareerPerGame: stats.CareerRates(totals),
		Options:       stats.Options,
		Selected:      category.String(),
		ChosenTitle:   selection.Title,
		ChosenStats:   selection.Seasons,
	}
	if found {
		resp.CareerStats = &totals
	}
	return resp
}

// loadPlayer returns the provider payload for a player, from cache when
// possible. The bool reports a cache hit.
func (h *Handler) loadPlayer(ctx context.Context, id int) (*playerData, bool, error) {
	key := fmt.Sprintf("player:%d", id)
	if data, _, ok := h.cache.Get(ctx, key); ok {
		var pd playerData
		if err := json.Unmarshal(data, &pd); err == nil && pd.Info != nil && pd.Career != nil {
			return &pd, true, nil
		}
		h.cache.Delete(ctx, key)
	}

	info, err := h.provider.PlayerInfo(ctx, id)
	if err != nil {
		return nil, false, err
	}
	career, err := h.provider.PlayerCareerStats(ctx, id)
	if err != nil {
		return nil, false, err
	}

	pd := &playerData{Info: info, Career: career}
	if data, err := json.Marshal(pd); err == nil {
		h.cache.Set(ctx, key, data, cache.TTLCareerStats)
	} else {
		h.logger.Warn("Caching player data failed", "player_id", id, "error", err)
	}
	return pd, false, nil
}

// loadPlayerInfo returns display data only, reusing a cached full payload
// when one exists.
func (h *Handler) loadPlayerInfo(ctx context.Context, id int) (*provider.PlayerInfo, error) {
	if data, _, ok := h.cache.Get(ctx, fmt.Sprintf("player:%d", id)); ok {
		var pd playerData
		if err := json.Unmarshal(data, &pd); err == nil && pd.Info != nil {
			return pd.Info, nil
		}
	}
	return h.provider.PlayerInfo(ctx, id)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/store"
)

// AddToRoster saves a player to the caller's roster.
// @Summary Add player to roster
// @Tags roster
// @Security BearerAuth
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/roster/{playerID} [post]
func (h *Handler) AddToRoster(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	info, err := h.loadPlayerInfo(r.Context(), playerID)
	if err != nil {
		h.writeProviderError(w, playerID, err)
		return
	}

	entry, err := h.store.AddRosterEntry(r.Context(), userID, playerID, info.Name, info.HeadshotURL)
	if errors.Is(err, store.ErrDuplicate) {
		respond.WriteError(w, http.StatusConflict, "ALREADY_IN_ROSTER", "Player already in roster")
		return
	}
	if err != nil {
		h.logger.Error("Adding roster entry failed", "user_id", userID, "player_id", playerID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update roster")
		return
	}

	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": info.Name + " added to roster!",
		"entry":   entry,
	})
}

// GetRoster lists the caller's roster.
// @Summary Get roster
// @Tags roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/roster [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	entries, err := h.store.ListRoster(r.Context(), userID)
	if err != nil {
		h.logger.Error("Listing roster failed", "user_id", userID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not load roster")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":  len(entries),
		"roster": entries,
	})
}

// RemoveFromRoster deletes a player from the caller's roster.
// @Summary Remove player from roster
// @Tags roster
// @Security BearerAuth
// @Param playerID path int true "NBA player ID"
// @Success 204 "Removed"
// @Failure 401 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/roster/{playerID} [delete]
func (h *Handler) RemoveFromRoster(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	err := h.store.RemoveRosterEntry(r.Context(), userID, playerID)
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player not in roster")
		return
	}
	if err != nil {
		h.logger.Error("Removing roster entry failed", "user_id", userID, "player_id", playerID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not update roster")
		return
	}
	respond.WriteNoContent(w)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/cache"
	"github.com/albapepper/courtside/internal/stats"
	"github.com/albapepper/courtside/internal/store"
)

const (
	maxCommentLength = 2000
	maxLabelLength   = 100
	commentPageSize  = 50
	snapshotPageSize = 20
)

// ProfileResponse is a cached player profile with its discussion.
type ProfileResponse struct {
	Profile   *store.PlayerProfile `json:"profile"`
	Comments  []store.Comment      `json:"comments"`
	Snapshots []store.Snapshot     `json:"snapshots"`
}

// CommentRequest is a new comment.
type CommentRequest struct {
	Body string `json:"body"`
}

// SnapshotRequest names a new snapshot.
type SnapshotRequest struct {
	Label string `json:"label"`
}

// snapshotPayload is what a snapshot freezes.
type snapshotPayload struct {
	PlayerName    string            `json:"player_name"`
	CareerStats   *stats.StatRecord `json:"career_stats"`
	CareerPerGame stats.Rates       `json:"career_per_game"`
	Seasons       int               `json:"regular_seasons"`
}

func profileCacheKey(playerID int) string {
	return fmt.Sprintf("profile:%d", playerID)
}

// GetProfile returns the locally cached profile with recent comments and
// snapshots, creating the profile from provider data on first view.
// @Summary Get player profile
// @Tags profiles
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/profiles/{playerID} [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	key := profileCacheKey(playerID)
	if data, etag, ok := h.cache.Get(r.Context(), key); ok {
		respond.WriteCached(w, r, respond.Cached{Body: data, ETag: etag, TTL: cache.TTLProfile, Hit: true})
		return
	}

	profile, err := h.ensureProfile(r.Context(), playerID)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	comments, err := h.store.ListComments(r.Context(), playerID, commentPageSize)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	snaps, err := h.store.ListSnapshots(r.Context(), playerID, snapshotPageSize)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}

	body, err := json.Marshal(ProfileResponse{Profile: profile, Comments: comments, Snapshots: snaps})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode response")
		return
	}
	etag := h.cache.Set(r.Context(), key, body, cache.TTLProfile)
	respond.WriteCached(w, r, respond.Cached{Body: body, ETag: etag, TTL: cache.TTLProfile})
}

// GetComments lists comments on a profile, newest first.
// @Summary List comments
// @Tags profiles
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/profiles/{playerID}/comments [get]
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}
	comments, err := h.store.ListComments(r.Context(), playerID, commentPageSize)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":    len(comments),
		"comments": comments,
	})
}

// PostComment adds a comment to a profile.
// @Summary Add comment
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} store.Comment
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/profiles/{playerID}/comments [post]
func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" || len(req.Body) > maxCommentLength {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_COMMENT",
			fmt.Sprintf("Comment must be between 1 and %d characters.", maxCommentLength))
		return
	}

	if _, err := h.ensureProfile(r.Context(), playerID); err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	c, err := h.store.AddComment(r.Context(), playerID, userID, req.Body)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	h.cache.Delete(r.Context(), profileCacheKey(playerID))
	respond.WriteJSONObject(w, http.StatusCreated, c)
}

// GetSnapshots lists stat snapshots on a profile, newest first.
// @Summary List snapshots
// @Tags profiles
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/profiles/{playerID}/snapshots [get]
func (h *Handler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}
	snaps, err := h.store.ListSnapshots(r.Context(), playerID, snapshotPageSize)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":     len(snaps),
		"snapshots": snaps,
	})
}

// PostSnapshot freezes the player's current career totals and rates.
// @Summary Capture snapshot
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param playerID path int true "NBA player ID"
// @Param body body SnapshotRequest true "Snapshot label"
// @Success 201 {object} store.Snapshot
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/profiles/{playerID}/snapshots [post]
func (h *Handler) PostSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var req SnapshotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" || len(req.Label) > maxLabelLength {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_LABEL",
			fmt.Sprintf("Label must be between 1 and %d characters.", maxLabelLength))
		return
	}

	pd, _, err := h.loadPlayer(r.Context(), playerID)
	if err != nil {
		h.writeProviderError(w, playerID, err)
		return
	}
	if _, err := h.ensureProfile(r.Context(), playerID); err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}

	totals, found := stats.CareerTotals(pd.Career.CareerTotalsRegularSeason)
	payload := snapshotPayload{
		PlayerName:    pd.Info.Name,
		CareerPerGame: stats.CareerRates(totals),
		Seasons:       len(pd.Career.SeasonTotalsRegularSeason),
	}
	if found {
		payload.CareerStats = &totals
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode snapshot")
		return
	}

	snap, err := h.store.AddSnapshot(r.Context(), playerID, userID, req.Label, raw)
	if err != nil {
		h.writeProfileError(w, playerID, err)
		return
	}
	h.cache.Delete(r.Context(), profileCacheKey(playerID))
	respond.WriteJSONObject(w, http.StatusCreated, snap)
}

// ensureProfile returns the cached profile, creating it from provider data
// when it does not exist yet.
func (h *Handler) ensureProfile(ctx context.Context, playerID int) (*store.PlayerProfile, error) {
	p, err := h.store.PlayerProfile(ctx, playerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	info, err := h.loadPlayerInfo(ctx, playerID)
	if err != nil {
		return nil, &providerError{err: err}
	}
	return h.store.UpsertPlayerProfile(ctx, store.PlayerProfile{
		PlayerID:       playerID,
		PlayerName:     info.Name,
		PlayerImageURL: info.HeadshotURL,
	})
}

// providerError marks failures that came from the stats provider.
type providerError struct{ err error }

func (e *providerError) Error() string { return e.err.Error() }
func (e *providerError) Unwrap() error { return e.err }

func (h *Handler) writeProfileError(w http.ResponseWriter, playerID int, err error) {
	var pe *providerError
	if errors.As(err, &pe) {
		h.writeProviderError(w, playerID, pe.err)
		return
	}
	h.logger.Error("Profile store request failed", "player_id", playerID, "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not load profile")
}

// Package handler provides HTTP handlers for all API endpoints.
// Player pages are assembled from the stats provider and shaped by the pure
// aggregation in package stats; user data goes through the profile store.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/auth"
	"github.com/albapepper/courtside/internal/cache"
	"github.com/albapepper/courtside/internal/provider"
	"github.com/albapepper/courtside/internal/provider/nbastats"
	"github.com/albapepper/courtside/internal/store"
)

// StatsProvider is the upstream source of player data.
type StatsProvider interface {
	PlayerCareerStats(ctx context.Context, playerID int) (*provider.CareerStats, error)
	PlayerInfo(ctx context.Context, playerID int) (*provider.PlayerInfo, error)
}

// Store is the subset of the profile store the handlers use.
type Store interface {
	CreateUser(ctx context.Context, username, email, passwordHash, favoriteTeam string) (*store.User, error)
	UserByUsername(ctx context.Context, username string) (*store.User, error)

	AddRosterEntry(ctx context.Context, userID int64, playerID int, name, imageURL string) (*store.RosterEntry, error)
	ListRoster(ctx context.Context, userID int64) ([]store.RosterEntry, error)
	RemoveRosterEntry(ctx context.Context, userID int64, playerID int) error

	UpsertPlayerProfile(ctx context.Context, p store.PlayerProfile) (*store.PlayerProfile, error)
	PlayerProfile(ctx context.Context, playerID int) (*store.PlayerProfile, error)
	AddComment(ctx context.Context, playerID int, userID int64, body string) (*store.Comment, error)
	ListComments(ctx context.Context, playerID, limit int) ([]store.Comment, error)
	AddSnapshot(ctx context.Context, playerID int, userID int64, label string, payload json.RawMessage) (*store.Snapshot, error)
	ListSnapshots(ctx context.Context, playerID, limit int) ([]store.Snapshot, error)

	RevokeToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
}

// Directory answers player name lookups.
type Directory interface {
	FindByFullName(query string) []provider.PlayerSummary
	Search(query string, limit int) []provider.PlayerSummary
	Len() int
}

// HealthChecker verifies database connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the Handler's collaborators.
type Deps struct {
	Provider  StatsProvider
	Store     Store
	DB        HealthChecker
	Cache     cache.Store
	Directory Directory
	Auth      *auth.Issuer
	Logger    *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	provider StatsProvider
	store    Store
	db       HealthChecker
	cache    cache.Store
	dir      Directory
	auth     *auth.Issuer
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		provider: d.Provider,
		store:    d.Store,
		db:       d.DB,
		cache:    d.Cache,
		dir:      d.Directory,
		auth:     d.Auth,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Courtside API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status, timestamp and player index size.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	players := 0
	if h.dir != nil {
		players = h.dir.Len()
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"indexed_players": players,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache statistics for the active backend.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// playerIDParam parses the {playerID} URL parameter, writing a 400 on failure.
func playerIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Player ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err.Error())
		return false
	}
	return true
}

// currentUser returns the authenticated user id. Routes calling it sit behind
// RequireAuth, so a missing id is a wiring bug and answers 401.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
		return 0, false
	}
	return id, true
}

// writeProviderError maps stats provider failures onto HTTP errors.
func (h *Handler) writeProviderError(w http.ResponseWriter, playerID int, err error) {
	switch {
	case errors.Is(err, nbastats.ErrPlayerNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Player "+strconv.Itoa(playerID)+" not found")
	case errors.Is(err, nbastats.ErrInvalidPlayerID):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Player ID must be a positive integer")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		h.logger.Error("Stats provider request failed", "player_id", playerID, "error", err)
		respond.WriteErrorDetail(w, http.StatusBadGateway, "PROVIDER_ERROR", "Stats provider unavailable", err.Error())
	}
}

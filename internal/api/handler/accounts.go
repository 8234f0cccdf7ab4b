package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/auth"
	"github.com/albapepper/courtside/internal/store"
)

const maxUsernameLength = 150

// SignupRequest is the signup form.
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FavoriteTeam    string `json:"favorite_team"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *store.User `json:"user"`
}

// validate returns the first problem with the form, or "".
func (req *SignupRequest) validate() string {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FavoriteTeam = strings.TrimSpace(req.FavoriteTeam)

	switch {
	case req.Username == "":
		return "Username is required."
	case len(req.Username) > maxUsernameLength:
		return "Username is too long."
	case req.Email == "":
		return "Email is required."
	case len(req.Password) < auth.MinPasswordLength:
		return "Password must be at least 8 characters."
	case req.Password != req.ConfirmPassword:
		return "Passwords do not match."
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "Enter a valid email address."
	}
	return ""
}

// Signup creates an account and logs the new user in.
// @Summary Sign up
// @Description Creates a user account. Passwords must match and be at least 8 characters.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Signup form"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FORM", msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Hashing password failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create account")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, req.Email, hash, req.FavoriteTeam)
	if errors.Is(err, store.ErrDuplicate) {
		respond.WriteError(w, http.StatusConflict, "USERNAME_TAKEN", "A user with that username already exists.")
		return
	}
	if err != nil {
		h.logger.Error("Creating user failed", "username", req.Username, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not create account")
		return
	}

	h.writeToken(w, http.StatusCreated, user)
}

// Login exchanges credentials for an access token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "Username and password are required.")
		return
	}

	user, err := h.store.UserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("Loading user failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not log in")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respond.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password.")
		return
	}

	h.writeToken(w, http.StatusOK, user)
}

// Logout revokes the presented token.
// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 204 "Logged out"
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	expires := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if err := h.store.RevokeToken(r.Context(), claims.ID, userID, expires); err != nil {
		h.logger.Error("Revoking token failed", "user_id", userID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not log out")
		return
	}
	respond.WriteNoContent(w)
}

func (h *Handler) writeToken(w http.ResponseWriter, status int, user *store.User) {
	token, claims, err := h.auth.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error("Issuing token failed", "user_id", user.ID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not issue token")
		return
	}
	respond.WriteJSONObject(w, status, TokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wonhee/golddash/backend/internal/auth"
	"github.com/wonhee/golddash/backend/internal/user"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// AuthHandler handles registration and login endpoints
// ⭐ SSOT: 인증 API 핸들러는 이 구조체에서만
type AuthHandler struct {
	users  *user.Repository
	tokens *auth.TokenManager
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *user.Repository, tokens *auth.TokenManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: log,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	u, err := h.users.Create(r.Context(), req.Username, req.Email, hashed)
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			respondError(w, http.StatusBadRequest, "Username or email already registered")
			return
		}
		h.logger.WithError(err).Error("Failed to create user")
		respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	respondJSON(w, http.StatusCreated, u)
}

// Login exchanges credentials for an access token. The form's username
// field carries the email address.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			h.logger.WithError(err).Error("Failed to look up user")
		}
		h.loginRejected(w)
		return
	}

	if !auth.CheckPassword(password, u.HashedPassword) {
		h.loginRejected(w)
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := h.users.UpdateLastLogin(r.Context(), u.ID); err != nil {
		h.logger.WithError(err).Warn("Failed to stamp last login")
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())
	if u == nil {
		unauthorized(w, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// Identical response for unknown email and wrong password
func (h *AuthHandler) loginRejected(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondError(w, http.StatusUnauthorized, "Incorrect email or password")
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scribehq/scribe-be/internal/apperrors"
	"github.com/scribehq/scribe-be/internal/auth"
	"github.com/scribehq/scribe-be/internal/config"
	"github.com/scribehq/scribe-be/internal/request"
	"github.com/scribehq/scribe-be/internal/services"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	users  services.UserServiceProvider
	events services.EventServiceProvider
	tokens *auth.Manager
	cfg    *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, events services.EventServiceProvider, tokens *auth.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, events: events, tokens: tokens, cfg: cfg}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload defines the structure for login requests. Presence checks
// happen in the controller so missing credentials fail as an authentication
// error, not a validation error.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with role USER.
func (h *AuthHandler) Register(c *request.Context) (*request.Result, error) {
	payload := c.Body.(*RegisterPayload)

	user, err := h.users.CreateUser(c.Request.Context(), c.Querier(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		return nil, err
	}

	return &request.Result{Status: http.StatusCreated, Body: user}, nil
}

// Login authenticates a user, sets the token cookie and returns the
// sanitized user.
func (h *AuthHandler) Login(c *request.Context) (*request.Result, error) {
	payload := c.Body.(*LoginPayload)
	if payload.Email == "" || payload.Password == "" {
		return nil, apperrors.Unauthenticated("email and password are required")
	}

	ctx := c.Request.Context()
	user, err := h.users.Authenticate(ctx, c.Querier(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		return nil, err
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	now := time.Now().UTC()
	if err := h.users.TouchLastLogin(ctx, c.Querier(), user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	http.SetCookie(c.Writer, h.sessionCookie(token))

	return &request.Result{Status: http.StatusOK, Body: map[string]any{"user": user}}, nil
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(c *request.Context) (*request.Result, error) {
	user, err := h.users.GetUserByID(c.Request.Context(), c.Querier(), c.User.UserID)
	if err != nil {
		return nil, err
	}
	return &request.Result{Status: http.StatusOK, Body: user}, nil
}

// Guest creates a time-limited guest identity and issues a token for it.
func (h *AuthHandler) Guest(c *request.Context) (*request.Result, error) {
	ctx := c.Request.Context()

	user, err := h.users.CreateGuest(ctx, c.Querier(), h.cfg.GuestTTL)
	if err != nil {
		return nil, err
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	if err := h.events.Record(ctx, c.Querier(), "auth.guest.created", "info", "Guest session created for "+user.Name, nil); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record guest event")
	}

	http.SetCookie(c.Writer, h.sessionCookie(token))

	return &request.Result{Status: http.StatusCreated, Body: map[string]any{"user": user, "token": token}}, nil
}

// sessionCookie builds the auth cookie. Security attributes depend on the
// environment so local development over plain HTTP keeps working.
func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL / time.Second),
		HttpOnly: false, // the SPA reads the token for its API client
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Domain = h.cfg.CookieDomain
	}
	return cookie
}

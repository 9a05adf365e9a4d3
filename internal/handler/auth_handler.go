package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/foresightmx/foresight/internal/service"
	"github.com/foresightmx/foresight/internal/state"
)

// AuthHandler handles sign-in, sign-up and the session lifecycle.
type AuthHandler struct {
	tracker  *service.ExpenseTracker
	sessions *SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tracker *service.ExpenseTracker, sessions *SessionManager) *AuthHandler {
	return &AuthHandler{tracker: tracker, sessions: sessions}
}

type credentialsRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type sessionResponse struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type signupResponse struct {
	ConfirmationRequired bool             `json:"confirmationRequired"`
	Session              *sessionResponse `json:"session,omitempty"`
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return NewValidationError(c, "Email and password are required")
	}

	identity, profile, err := h.tracker.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("sign-in failed")
		return authError(c, err)
	}

	sess := h.sessions.Create(state.FromProfile(profile, time.Now()), identity.AccessToken)
	return c.JSON(http.StatusOK, sessionResponse{
		Token:       sess.Token,
		Email:       profile.Email,
		DisplayName: profile.DisplayName(),
	})
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return NewValidationError(c, "Email and password are required")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return NewValidationError(c, "First and last name are required")
	}

	identity, profile, confirmed, err := h.tracker.SignUp(c.Request().Context(), req.Email, req.Password, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("sign-up failed")
		return authError(c, err)
	}
	if !confirmed {
		return c.JSON(http.StatusAccepted, signupResponse{ConfirmationRequired: true})
	}

	sess := h.sessions.Create(state.FromProfile(profile, time.Now()), identity.AccessToken)
	return c.JSON(http.StatusOK, signupResponse{
		Session: &sessionResponse{
			Token:       sess.Token,
			Email:       profile.Email,
			DisplayName: profile.DisplayName(),
		},
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return NewValidationError(c, "Email is required")
	}
	if err := h.tracker.ResendVerification(c.Request().Context(), strings.TrimSpace(req.Email)); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("resend verification failed")
		return authError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	if err := h.tracker.SignOut(c.Request().Context(), sess.AccessToken); err != nil {
		// The local session dies either way; token revocation is advisory.
		log.Warn().Err(err).Msg("remote sign-out failed")
	}
	h.sessions.Drop(sess.Token)
	return c.NoContent(http.StatusNoContent)
}

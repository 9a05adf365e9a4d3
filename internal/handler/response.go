package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foresightmx/foresight/internal/model"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewValidationError responds with 400.
func NewValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// NewUnauthorizedError responds with 401.
func NewUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// NewNotFoundError responds with 404.
func NewNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// NewConflictError responds with 409.
func NewConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// NewInternalError responds with 500.
func NewInternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// authError maps the fixed auth error set onto status codes and the
// user-facing messages the original client showed for each category.
func authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Demasiados intentos. Espera un minuto e intenta nuevamente."})
	case errors.Is(err, model.ErrInvalidCredentials):
		return NewUnauthorizedError(c, "Correo o contraseña incorrectos.")
	case errors.Is(err, model.ErrEmailNotConfirmed):
		return NewUnauthorizedError(c, "Debes confirmar tu correo antes de acceder.")
	case errors.Is(err, model.ErrUserExists):
		return NewConflictError(c, "Este correo ya tiene una cuenta. Intenta iniciar sesión.")
	case errors.Is(err, model.ErrUserNotFound):
		return NewNotFoundError(c, "No existe una cuenta con este correo.")
	case errors.Is(err, model.ErrWeakPassword):
		return NewValidationError(c, "La contraseña debe tener al menos 6 caracteres.")
	case errors.Is(err, model.ErrProfileUnavailable):
		return NewInternalError(c, "No se pudo cargar tu perfil. Intenta iniciar sesión de nuevo.")
	default:
		return NewInternalError(c, "Error de conexión. Intenta nuevamente.")
	}
}

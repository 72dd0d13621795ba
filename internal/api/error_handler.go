package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. TaskID is
// only set on 5xx responses so a client report can be correlated with logs.
type errorResponse struct {
	Error  string `json:"error"`
	TaskID string `json:"task_id,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, taskID := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, TaskID: taskID})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered", ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", ""
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", ""
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, "request not found", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", ""
	case errors.Is(err, domain.ErrInvalidNationalID):
		return http.StatusBadRequest, "invalid national id", ""
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid role", ""
	case errors.Is(err, domain.ErrOAuthConfig):
		return http.StatusInternalServerError, "oauth is not configured", ""
	case errors.Is(err, domain.ErrOAuthExchange):
		return http.StatusBadGateway, "oauth exchange failed", ""
	}

	// Unexpected error: log the real cause, return a generic message with a
	// correlation id the caller can quote back.
	taskID := uuid.NewString()
	log.Error().
		Err(err).
		Str("task_id", taskID).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", taskID
}

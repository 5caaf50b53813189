package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ryzetech/lifestyle-api/internal/api/handler"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error         string `json:"error"`
	LoginRequired bool   `json:"login_required,omitempty"`
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

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusForbidden, errorResponse{Error: err.Error(), LoginRequired: true}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "session expired"}
	case errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNoPendingIntent),
		errors.Is(err, domain.ErrIntentMismatch),
		errors.Is(err, domain.ErrDocumentOwned),
		errors.Is(err, domain.ErrAlreadyOnboarded),
		errors.Is(err, session.ErrViewInactive):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, handler.ErrValidation),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrUnknownView),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidEffect),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

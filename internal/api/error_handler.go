package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
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

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSiteNotFound):
		return http.StatusNotFound, "site not found"
	case errors.Is(err, domain.ErrAdNotFound):
		return http.StatusNotFound, "advertisement not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, "plan not found"
	case errors.Is(err, domain.ErrVoteNotFound):
		return http.StatusNotFound, "vote not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountBlocked):
		return http.StatusForbidden, "account is blocked"
	case errors.Is(err, domain.ErrSignupDisabled):
		return http.StatusForbidden, "signups are currently disabled"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrShuffleQuotaExceeded):
		return http.StatusTooManyRequests, "daily shuffle limit reached"
	case errors.Is(err, domain.ErrSlotLimitReached):
		return http.StatusUnprocessableEntity, "site slot limit reached"
	case errors.Is(err, domain.ErrPayoutBelowThreshold):
		return http.StatusUnprocessableEntity, "balance below payout threshold"
	case errors.Is(err, domain.ErrNoPaymentDetails):
		return http.StatusUnprocessableEntity, "payment details required"
	case errors.Is(err, domain.ErrInvalidListing):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

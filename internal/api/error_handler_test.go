package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrSiteNotFound, http.StatusNotFound},
		{domain.ErrAdNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrPlanNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountBlocked, http.StatusForbidden},
		{domain.ErrSignupDisabled, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrShuffleQuotaExceeded, http.StatusTooManyRequests},
		{domain.ErrSlotLimitReached, http.StatusUnprocessableEntity},
		{domain.ErrPayoutBelowThreshold, http.StatusUnprocessableEntity},
		{domain.ErrNoPaymentDetails, http.StatusUnprocessableEntity},
		{domain.ErrInvalidListing, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(fmt.Errorf("add site: %w", domain.ErrSlotLimitReached), c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("wrapped domain error must still map, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), c)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_GenericErrorHidesDetails(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("pq: connection string leaked"), c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" || strings.Contains(body, "leaked") {
		t.Fatalf("internal detail must not reach the client: %s", body)
	}
}

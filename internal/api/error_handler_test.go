package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tourista/tourism-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "please authenticate"},
		{domain.NewValidationError("email", "must be a valid email"), http.StatusBadRequest, "email must be a valid email"},
		{fmt.Errorf("update: %w", domain.ErrInvalidUpdate), http.StatusBadRequest, "invalid updates"},
		{domain.ErrEmailTaken, http.StatusBadRequest, "email already registered"},
		{domain.ErrInvalidCredentials, http.StatusNotFound, "unable to login"},
		{domain.ErrActorNotFound, http.StatusNotFound, "not found"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed login attempts"},
		{fmt.Errorf("%w: mongo: timeout", domain.ErrStoreUnavailable), http.StatusInternalServerError, "internal server error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp.Error)
			}
		})
	}
}

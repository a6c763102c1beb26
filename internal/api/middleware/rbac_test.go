package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourism-api/internal/api/handler"
	"github.com/tourista/tourism-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(handler.CtxActorType, domain.ActorAdmin)

	called := false
	mw := RBAC(domain.ActorAdmin)
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	for _, at := range []domain.ActorType{domain.ActorUser, domain.ActorTourguide, ""} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if at != "" {
			c.Set(handler.CtxActorType, at)
		}

		mw := RBAC(domain.ActorAdmin)
		h := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		if err := h(c); err != domain.ErrForbidden {
			t.Fatalf("%q: expected ErrForbidden, got %v", at, err)
		}
	}
}

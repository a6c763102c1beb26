package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tourista/tourism-api/internal/api/handler"
	"github.com/tourista/tourism-api/internal/core/domain"
)

// RBAC restricts a gated route to the given actor types. It must run after Gate.
func RBAC(allowed ...domain.ActorType) echo.MiddlewareFunc {
	set := make(map[domain.ActorType]struct{}, len(allowed))
	for _, t := range allowed {
		set[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t, _ := c.Get(handler.CtxActorType).(domain.ActorType)
			if _, ok := set[t]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

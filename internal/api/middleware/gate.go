package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourism-api/internal/api/handler"
	"github.com/tourista/tourism-api/internal/api/metrics"
	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

// Gate authenticates the bearer token and injects the actor, its type and
// the raw token into the context. Every rejection returns the same
// domain.ErrUnauthenticated; only a store outage is reported differently.
// With no accepted types, any actor type passes.
func Gate(tokens ports.TokenAuthority, accept ...domain.ActorType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject("missing_header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				return reject("malformed_header")
			}

			actor, err := tokens.ValidateToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrStoreUnavailable) {
					return err
				}
				return reject("invalid_token")
			}
			if len(accept) > 0 && !slices.Contains(accept, actor.Type()) {
				return reject("actor_type")
			}

			c.Set(handler.CtxActor, actor)
			c.Set(handler.CtxActorType, actor.Type())
			c.Set(handler.CtxToken, token)
			return next(c)
		}
	}
}

func reject(reason string) error {
	metrics.GateRejectionsTotal.WithLabelValues(reason).Inc()
	return domain.ErrUnauthenticated
}

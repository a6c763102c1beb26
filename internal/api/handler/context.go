package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tourista/tourism-api/internal/core/domain"
)

// Context keys set by the request gate.
const (
	CtxActor     = "actor"
	CtxActorType = "actor_type"
	CtxToken     = "token"
)

// ctxActor returns the actor and raw bearer token injected by the request
// gate. A missing value means the route was registered without the gate.
func ctxActor(c echo.Context) (domain.Actor, string, error) {
	actor, _ := c.Get(CtxActor).(domain.Actor)
	token, _ := c.Get(CtxToken).(string)
	if actor == nil || token == "" {
		return nil, "", domain.ErrUnauthenticated
	}
	return actor, token, nil
}

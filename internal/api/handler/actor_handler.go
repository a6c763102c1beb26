package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourism-api/internal/api/metrics"
	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

const monthlyGuides = 4

// ActorHandler serves the routes of one actor collection (/users,
// /tourguides or /admins). Errors are returned to the central error handler.
type ActorHandler struct {
	actorType domain.ActorType
	auth      ports.AuthService
	profile   ports.ProfileService
}

func NewActorHandler(t domain.ActorType, auth ports.AuthService, profile ports.ProfileService) *ActorHandler {
	return &ActorHandler{actorType: t, auth: auth, profile: profile}
}

// Register creates a new account.
//
// @Summary      Sign up
// @Tags         actors
// @Accept       json
// @Param        type  path  string           true  "users, tourguides or admins"
// @Param        body  body  registerRequest  true  "Signup details"
// @Success      201
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /{type} [post]
func (h *ActorHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("", "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(string(h.actorType), "invalid").Inc()
		return err
	}

	_, err := h.auth.Register(c.Request().Context(), h.actorType, ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Country:  req.Country,
		Language: req.Language,
		License:  req.License,
	})
	metrics.RegistrationsTotal.WithLabelValues(string(h.actorType), outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Login exchanges credentials for a bearer token.
//
// @Summary      Login
// @Tags         actors
// @Accept       json
// @Produce      json
// @Param        type  path      string        true  "tourguides or admins"
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /{type}/login [post]
func (h *ActorHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidCredentials
	}

	res, err := h.auth.Login(c.Request().Context(), h.actorType, req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(string(h.actorType), outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: res.Token})
}

// SharedLogin is the combined user/tour guide login. User credentials are
// tried first.
//
// @Summary      Login as user or tour guide
// @Tags         actors
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sharedLoginResponse
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /users/login [post]
func (h *ActorHandler) SharedLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidCredentials
	}

	res, err := h.auth.SharedLogin(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues("shared", outcome(err)).Inc()
	if err != nil {
		return err
	}

	resp := sharedLoginResponse{Token: res.Token}
	switch res.Actor.Type() {
	case domain.ActorUser:
		resp.User = true
	case domain.ActorTourguide:
		resp.Tourguide = true
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated actor.
//
// @Summary      Current profile
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string  true  "users, tourguides or admins"
// @Success      200
// @Failure      401   {object}  map[string]string
// @Router       /{type}/me [get]
func (h *ActorHandler) Me(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// Update changes profile fields. Any key outside the actor type's allowlist
// rejects the whole request.
//
// @Summary      Update profile
// @Tags         actors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string          true  "users, tourguides or admins"
// @Param        body  body  map[string]string  true  "Fields to change"
// @Success      200
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /{type} [patch]
func (h *ActorHandler) Update(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return domain.ErrInvalidUpdate
	}

	updated, err := h.profile.Update(c.Request().Context(), actor, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Logout revokes the token used for this request. Other sessions stay valid.
//
// @Summary      Logout
// @Tags         actors
// @Security     BearerAuth
// @Param        type  path  string  true  "users, tourguides or admins"
// @Success      200
// @Failure      401   {object}  map[string]string
// @Router       /{type}/logout [post]
func (h *ActorHandler) Logout(c echo.Context) error {
	actor, token, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), actor, token); err != nil {
		return err
	}
	metrics.TokenRevocationsTotal.WithLabelValues(string(actor.Type())).Inc()
	return c.NoContent(http.StatusOK)
}

// Like toggles a like on a post.
//
// @Summary      Like or unlike a post
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "users or tourguides"
// @Param        id    path      string  true  "Post ID"
// @Success      200   {object}  likeResponse
// @Router       /{type}/like/{id} [patch]
func (h *ActorHandler) Like(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	res, err := h.profile.ToggleLike(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: res.Liked, Likes: res.Likes})
}

// Reserve returns a handler that stores the hotel or restaurant reference
// sent as {"<kind>": "<id>"}.
//
// @Summary      Reserve a hotel or restaurant
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string             true  "hotel or restaurant"
// @Param        body  body  map[string]string  true  "Reference, keyed by kind"
// @Success      200
// @Router       /users/{kind} [post]
func (h *ActorHandler) Reserve(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, _, err := ctxActor(c)
		if err != nil {
			return err
		}
		body := map[string]string{}
		if err := c.Bind(&body); err != nil {
			return domain.NewValidationError(kind, "is required")
		}

		updated, err := h.profile.Reserve(c.Request().Context(), actor, kind, body[kind])
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// JoinTour makes the caller a member of tour :id, leaving any previous tour.
//
// @Summary      Join a tour
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tour ID"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Router       /users/jointour/{id} [post]
func (h *ActorHandler) JoinTour(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	updated, err := h.profile.JoinTour(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// LeaveTour clears the caller's tour membership.
//
// @Summary      Leave the current tour
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Failure      400  {object}  map[string]string
// @Router       /users/unjointour [post]
func (h *ActorHandler) LeaveTour(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	updated, err := h.profile.LeaveTour(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// TourUsers lists the members of tour :id.
//
// @Summary      Tour members
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tour ID"
// @Success      200
// @Router       /users/tourusers/{id} [get]
func (h *ActorHandler) TourUsers(c echo.Context) error {
	users, err := h.profile.TourMembers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.Actor{}
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteImage resets the avatar reference to the default image.
//
// @Summary      Remove avatar
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string  true  "users, tourguides or admins"
// @Success      200
// @Router       /{type}/deleteimage [delete]
func (h *ActorHandler) DeleteImage(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	updated, err := h.profile.ResetAvatar(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// List returns the actors of this collection.
//
// @Summary      List actors
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string  true  "users or tourguides"
// @Success      200
// @Router       /{type} [get]
func (h *ActorHandler) List(c echo.Context) error {
	return h.list(c, 0)
}

// Month returns the featured tour guides.
//
// @Summary      Guides of the month
// @Tags         tourguides
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Router       /tourguides/month [get]
func (h *ActorHandler) Month(c echo.Context) error {
	return h.list(c, monthlyGuides)
}

func (h *ActorHandler) list(c echo.Context, limit int) error {
	actors, err := h.profile.List(c.Request().Context(), h.actorType, limit)
	if err != nil {
		return err
	}
	if actors == nil {
		actors = []domain.Actor{}
	}
	return c.JSON(http.StatusOK, actors)
}

// Get returns one actor's public profile.
//
// @Summary      Get actor
// @Tags         actors
// @Produce      json
// @Param        type  path  string  true  "users or tourguides"
// @Param        id    path  string  true  "Actor ID"
// @Success      200
// @Failure      404   {object}  map[string]string
// @Router       /{type}/{id} [get]
func (h *ActorHandler) Get(c echo.Context) error {
	actor, err := h.profile.Get(c.Request().Context(), h.actorType, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// Delete removes an actor. Admin only.
//
// @Summary      Delete actor
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string  true  "users or tourguides"
// @Param        id    path  string  true  "Actor ID"
// @Success      200
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /{type}/{id} [delete]
func (h *ActorHandler) Delete(c echo.Context) error {
	actor, err := h.profile.Delete(c.Request().Context(), h.actorType, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// outcome is the metrics label for a service result.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrEmailTaken):
		return "duplicate"
	}
	return "error"
}

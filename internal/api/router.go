package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tourista/tourism-api/docs"
	"github.com/tourista/tourism-api/internal/api/handler"
	"github.com/tourista/tourism-api/internal/api/middleware"
	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
)

// Deps carries everything the router needs. Registry defaults to the global
// Prometheus registry.
type Deps struct {
	Auth        ports.AuthService
	Profile     ports.ProfileService
	Tokens      ports.TokenAuthority
	Health      map[string]handler.Pinger
	Log         zerolog.Logger
	CORSOrigins []string
	Registry    *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tourism",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Ops ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	adminOnly := []echo.MiddlewareFunc{middleware.Gate(d.Tokens), middleware.RBAC(domain.ActorAdmin)}

	// --- Users ---
	users := handler.NewActorHandler(domain.ActorUser, d.Auth, d.Profile)
	userGate := middleware.Gate(d.Tokens, domain.ActorUser)
	ug := e.Group("/users")
	ug.POST("", users.Register)
	ug.POST("/login", users.SharedLogin)
	ug.GET("/me", users.Me, userGate)
	ug.PATCH("", users.Update, userGate)
	ug.POST("/logout", users.Logout, userGate)
	ug.PATCH("/like/:id", users.Like, userGate)
	ug.POST("/"+domain.ReserveHotel, users.Reserve(domain.ReserveHotel), userGate)
	ug.POST("/"+domain.ReserveRestaurant, users.Reserve(domain.ReserveRestaurant), userGate)
	ug.DELETE("/deleteimage", users.DeleteImage, userGate)
	ug.POST("/jointour/:id", users.JoinTour, userGate)
	ug.POST("/unjointour", users.LeaveTour, userGate)
	ug.GET("/tourusers/:id", users.TourUsers, middleware.Gate(d.Tokens))
	ug.GET("", users.List, middleware.Gate(d.Tokens))
	ug.GET("/:id", users.Get)
	ug.DELETE("/:id", users.Delete, adminOnly...)

	// --- Tour guides ---
	guides := handler.NewActorHandler(domain.ActorTourguide, d.Auth, d.Profile)
	guideGate := middleware.Gate(d.Tokens, domain.ActorTourguide)
	gg := e.Group("/tourguides")
	gg.POST("", guides.Register)
	gg.POST("/login", guides.Login)
	gg.GET("/me", guides.Me, guideGate)
	gg.PATCH("", guides.Update, guideGate)
	gg.POST("/logout", guides.Logout, guideGate)
	gg.PATCH("/like/:id", guides.Like, guideGate)
	gg.DELETE("/deleteimage", guides.DeleteImage, guideGate)
	gg.GET("", guides.List, middleware.Gate(d.Tokens))
	gg.GET("/month", guides.Month, middleware.Gate(d.Tokens))
	gg.GET("/:id", guides.Get)
	gg.DELETE("/:id", guides.Delete, adminOnly...)

	// --- Admins ---
	admins := handler.NewActorHandler(domain.ActorAdmin, d.Auth, d.Profile)
	adminGate := middleware.Gate(d.Tokens, domain.ActorAdmin)
	ag := e.Group("/admins")
	ag.POST("", admins.Register)
	ag.POST("/login", admins.Login)
	ag.GET("/me", admins.Me, adminGate)
	ag.PATCH("", admins.Update, adminGate)
	ag.POST("/logout", admins.Logout, adminGate)
	ag.DELETE("/deleteimage", admins.DeleteImage, adminGate)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

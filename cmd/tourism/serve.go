package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tourista/tourism-api/internal/api"
	"github.com/tourista/tourism-api/internal/api/handler"
	"github.com/tourista/tourism-api/internal/api/metrics"
	"github.com/tourista/tourism-api/internal/core/ports"
	"github.com/tourista/tourism-api/internal/core/service"
	mongodb "github.com/tourista/tourism-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tourista/tourism-api/internal/infrastructure/db/redis"
	"github.com/tourista/tourism-api/internal/infrastructure/queue"
	"github.com/tourista/tourism-api/internal/pkg/config"
	"github.com/tourista/tourism-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Action: func(c *cli.Context) error {
			return serve(c.Context, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tourism-api",
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	health := map[string]handler.Pinger{}
	if store.db != nil {
		health["mongodb"] = handler.MongoPinger(store.db)
	}

	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		health["redis"] = handler.RedisPinger(rdb)
		if cfg.Auth.MaxFailures > 0 {
			throttle = redisdb.NewLoginThrottle(rdb, cfg.Auth.MaxFailures, cfg.Auth.FailureWindow)
		}
	} else {
		log.Warn().Msg("REDIS_ADDR not set; failed-login throttling disabled")
	}

	var audit ports.AuditSink
	if store.db != nil {
		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, mongodb.NewAuditRepository(store.db), logger.Component("audit"))
		dispatcher.Start(ctx)
		defer dispatcher.Close()
		metrics.RegisterAuditQueue(dispatcher.Depth, dispatcher.Dropped)
		audit = dispatcher
	}

	hasher := service.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency).WithWait(cfg.Store.Timeout)
	credentials := service.NewCredentialStore(store.repos, hasher, logger.Component("credentials"))
	tokens := service.NewTokenAuthority(store.repos, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(credentials, tokens, throttle, audit, logger.Component("auth")),
		Profile:     service.NewProfileService(store.repos, credentials, logger.Component("profile")),
		Tokens:      tokens,
		Health:      health,
		Log:         logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Driver).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("initiating shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown completed")
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
	"github.com/tourista/tourism-api/internal/infrastructure/db/memory"
	mongodb "github.com/tourista/tourism-api/internal/infrastructure/db/mongo"
	"github.com/tourista/tourism-api/internal/pkg/config"
)

// actorStore is the opened persistence layer. db is nil for the memory driver.
type actorStore struct {
	repos ports.ActorRepositories
	db    *mongo.Database
	close func(context.Context)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*actorStore, error) {
	repos := ports.ActorRepositories{}

	if cfg.Store.Driver == config.DriverMemory {
		for _, t := range domain.ActorTypes {
			repos[t] = memory.NewActorRepository(t)
		}
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &actorStore{repos: repos, close: func(context.Context) {}}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Store.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return nil, err
	}
	for _, t := range domain.ActorTypes {
		repo := mongodb.NewActorRepository(db, t, cfg.Store.Timeout)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("indexes for %s: %w", t.Collection(), err)
		}
		repos[t] = repo
	}
	if err := mongodb.EnsureAuditIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("audit index creation failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return &actorStore{
		repos: repos,
		db:    db,
		close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
	}, nil
}

package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/tourista/tourism-api/internal/core/domain"
	"github.com/tourista/tourism-api/internal/core/ports"
	"github.com/tourista/tourism-api/internal/core/service"
	"github.com/tourista/tourism-api/internal/pkg/config"
	"github.com/tourista/tourism-api/pkg/logger"
)

func adminCmd() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Manage admin accounts",
		Subcommands: []*cli.Command{
			adminCreateCmd(),
		},
	}
}

func adminCreateCmd() *cli.Command {
	var name, email string
	return &cli.Command{
		Name:  "create",
		Usage: "Create an admin account (password is read from ADMIN_PASSWORD)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Display name",
				Required:    true,
				Destination: &name,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Login email",
				Required:    true,
				Destination: &email,
			},
		},
		Action: func(c *cli.Context) error {
			password := os.Getenv("ADMIN_PASSWORD")
			if password == "" {
				return errors.New("ADMIN_PASSWORD must be set")
			}
			cfg := config.Load()
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "tourism-admin"})
			return createAdmin(c.Context, cfg, log, ports.RegisterInput{Name: name, Email: email, Password: password})
		},
	}
}

func createAdmin(ctx context.Context, cfg *config.Config, log zerolog.Logger, in ports.RegisterInput) error {
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	credentials := service.NewCredentialStore(store.repos, service.NewHasher(cfg.Auth.BcryptCost, 1).WithWait(cfg.Store.Timeout), log)
	admin, err := credentials.Register(ctx, domain.ActorAdmin, in)
	if err != nil {
		return err
	}
	log.Info().Str("actor_id", admin.ActorID()).Str("email", admin.Creds().Email).Msg("admin created")
	return nil
}

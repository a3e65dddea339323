package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/reservd/internal/config"
	"github.com/example/reservd/internal/db"
	"github.com/example/reservd/internal/logging"
	"github.com/example/reservd/internal/postgres"
	"github.com/example/reservd/internal/reservation"
	"github.com/example/reservd/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			logger := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			slog.SetDefault(logger)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			pool, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Ping(ctx, pool); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := postgres.Migrate(ctx, pool); err != nil {
					return err
				}
			}

			repo := postgres.NewReservationRepo(pool)
			svc := reservation.NewService(repo, cfg.Rules(), logger)
			srv := &web.Server{Reservations: svc, Log: logger}

			logger.Info("listening", slog.String("addr", cfg.HTTPAddr))
			return web.Start(ctx, cfg.HTTPAddr, srv.Routes())
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	return cmd
}

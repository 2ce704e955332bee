package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/ledgerpro/internal/config"
	"github.com/diewo77/ledgerpro/internal/db"
	"github.com/diewo77/ledgerpro/internal/logger"
	"github.com/diewo77/ledgerpro/internal/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	root := &cobra.Command{
		Use:   "ledgerpro",
		Short: "LedgerPro accounting backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := bootstrap()
				if err != nil {
					return err
				}
				_, err = db.ConnectAndMigrate(cfg.Database)
				if err == nil {
					log.Info().Msg("migrations applied")
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load demo data into an empty database",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := bootstrap()
				if err != nil {
					return err
				}
				conn, err := db.ConnectAndMigrate(cfg.Database)
				if err != nil {
					return err
				}
				return db.Seed(conn)
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads .env (if present), the config and the logger.
func bootstrap() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(logger.Config(cfg.Log)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	var conn *gorm.DB
	if cfg.App.Migrations {
		conn, err = db.ConnectAndMigrate(cfg.Database)
	} else {
		conn, err = db.Connect(cfg.Database)
	}
	if err != nil {
		return err
	}

	if cfg.App.Dev {
		if err := db.Seed(conn); err != nil {
			log.Warn().Err(err).Msg("seeding failed")
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.New(conn),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	srvLog := logger.WithComponent("server")
	errCh := make(chan error, 1)
	go func() {
		srvLog.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		srvLog.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

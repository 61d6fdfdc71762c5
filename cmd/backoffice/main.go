package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/config"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/customer"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
	backofficeHttp "github.com/vasiliy-maslov/ecommerce-backoffice/internal/handler/http"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/order"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/report"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "backoffice").Logger()

	log.Info().Msg("Back office starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := db.Migrate(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx := context.Background()
	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	hasher := auth.NewPasswordHasher()
	sessions := auth.NewSessionStore(pg.Pool)
	authSvc := auth.NewService(pg.Pool, sessions, hasher, cfg.App.SessionTTL)

	reportSvc := report.NewService(pg, report.NewRepository(pg.Pool), order.NewRepository(pg.Pool))
	customerSvc := customer.NewService(pg, customer.NewRepository(pg.Pool), hasher)

	router := backofficeHttp.NewRouter(backofficeHttp.RouterDeps{
		Reports:       reportSvc,
		Customers:     customerSvc,
		Auth:          authSvc,
		Sessions:      sessions,
		Renderer:      renderer,
		SecureCookies: cfg.App.SecureCookies,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Back office stopped gracefully")
}

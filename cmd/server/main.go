// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the entry point for the InvoiceMe Organizer server.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered loading (defaults, config.yaml,
//     environment variables), failing fast on missing required values
//  2. Logging: zerolog global logger
//  3. Database: admin + anon Postgres pools, goose migrations
//  4. Sessions: HMAC-signed session cookies
//  5. Worker client: enqueue calls behind a circuit breaker
//  6. HTTP server: chi router, JSON API, static pages, /metrics
//
// Required environment: DATABASE_ADMIN_DSN, DATABASE_ANON_DSN,
// WORKER_BASE_URL, WORKER_API_TOKEN, AUTH_COOKIE_SECRET (32+ chars).
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, waits for in-flight requests up to
// SERVER_SHUTDOWN_TIMEOUT, then closes the database pools.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/invoiceme/organizer/internal/api"
	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/config"
	"github.com/invoiceme/organizer/internal/database"
	"github.com/invoiceme/organizer/internal/logging"
	"github.com/invoiceme/organizer/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	ctx := context.Background()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	sessions, err := auth.NewSessions(cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize sessions")
	}

	workerClient := worker.New(cfg.Worker)

	handler := api.NewHandler(db, sessions, workerClient, cfg)
	router := api.NewRouter(handler, sessions, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server starting")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}

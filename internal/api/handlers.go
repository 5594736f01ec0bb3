// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"time"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/config"
	"github.com/invoiceme/organizer/internal/database"
)

// serviceName appears in the health response.
const serviceName = "InvoiceMe Organizer"

// WorkerClient notifies the external worker that a queued job exists.
// *worker.Client implements it; tests substitute a fake.
type WorkerClient interface {
	Enqueue(ctx context.Context, jobID string) error
}

// Handler processes HTTP requests for every API route. One instance is
// shared across all requests; all fields are read-only after construction.
type Handler struct {
	store     database.Store
	sessions  *auth.Sessions
	worker    WorkerClient
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler with its collaborators.
func NewHandler(store database.Store, sessions *auth.Sessions, workerClient WorkerClient, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		sessions:  sessions,
		worker:    workerClient,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

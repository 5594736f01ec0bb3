// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"

	"github.com/invoiceme/organizer/internal/models"
)

// Store is the persistence surface consumed by the API handlers.
// *DB implements it against Postgres; tests substitute a fake.
type Store interface {
	// UserByEmail looks up a user by exact (already lowercased) email.
	// Returns ErrNotFound when no row matches.
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	// UserByID looks up a user by id. Returns ErrNotFound when absent.
	UserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUserFolders stores both Drive folder identifiers on the user row.
	UpdateUserFolders(ctx context.Context, userID, rawFolderID, docsFolderID string) error

	// CreateJob inserts a job in "queued" status with a folder snapshot and
	// returns the stored row including its generated id and created_at.
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)

	// JobByID fetches a single job. Returns ErrNotFound when absent.
	JobByID(ctx context.Context, id string) (*models.Job, error)

	// JobsByOrg lists an organization's jobs, most recent first, capped at
	// JobListLimit rows.
	JobsByOrg(ctx context.Context, orgID string) ([]models.Job, error)

	// JobItems lists a job's items in chronological order.
	JobItems(ctx context.Context, jobID string) ([]models.JobItem, error)

	// SetJobMessage updates a job's message without touching its status.
	// Used to record a failed worker notification on the queued row.
	SetJobMessage(ctx context.Context, jobID, message string) error

	// Ping reports store readiness.
	Ping(ctx context.Context) error
}

var _ Store = (*DB)(nil)

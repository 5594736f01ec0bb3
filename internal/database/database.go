// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package database provides access to the hosted Postgres store.
//
// Two pools are built from configuration:
//
//   - Admin: service-role credentials that bypass row-level security.
//     All route-handler reads and writes go through this pool; tenancy is
//     enforced in the handlers by attributing org/user from the session.
//   - Anon: restricted-role credentials for safe unauthenticated reads.
//     Exercised by the health readiness ping and never used for writes.
//
// Schema migrations are embedded and applied with goose at startup.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoiceme/organizer/internal/config"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// JobListLimit caps job listings at the most recent 50 rows.
const JobListLimit = 50

// DB wraps the admin and anon connection pools.
type DB struct {
	admin *pgxpool.Pool
	anon  *pgxpool.Pool
}

// New builds both pools from config and applies pending migrations using
// the admin credentials. The anon pool is connected lazily; a bad anon DSN
// surfaces on the first readiness ping rather than blocking startup.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	admin, err := newPool(ctx, cfg.AdminDSN, cfg)
	if err != nil {
		return nil, fmt.Errorf("admin pool: %w", err)
	}

	if err := admin.Ping(ctx); err != nil {
		admin.Close()
		return nil, fmt.Errorf("admin ping: %w", err)
	}

	if err := runMigrations(cfg.AdminDSN); err != nil {
		admin.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	anon, err := newPool(ctx, cfg.AnonDSN, cfg)
	if err != nil {
		admin.Close()
		return nil, fmt.Errorf("anon pool: %w", err)
	}

	return &DB{admin: admin, anon: anon}, nil
}

func newPool(ctx context.Context, dsn string, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		pc.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	return pgxpool.NewWithConfig(ctx, pc)
}

// Ping checks readiness on the anon pool. The restricted role is enough to
// answer a liveness query and keeps the service role out of the hot path.
func (db *DB) Ping(ctx context.Context) error {
	return db.anon.Ping(ctx)
}

// Close releases both pools.
func (db *DB) Close() {
	db.admin.Close()
	db.anon.Close()
}

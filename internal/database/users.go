// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invoiceme/organizer/internal/models"
)

const userColumns = `id, email, COALESCE(password_hash, ''), COALESCE(org_id::text, ''),
       approved, is_admin, COALESCE(raw_folder_id, ''), COALESCE(docs_folder_id, '')`

// UserByEmail looks up a user by exact email. Callers lowercase the email
// before lookup; the schema stores emails lowercased.
func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return db.scanUser(db.admin.QueryRow(ctx, query, email))
}

// UserByID looks up a user by id.
func (db *DB) UserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return db.scanUser(db.admin.QueryRow(ctx, query, id))
}

func (db *DB) scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.OrgID,
		&u.Approved, &u.IsAdmin, &u.RawFolderID, &u.DocsFolderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// UpdateUserFolders stores both Drive folder identifiers on the user row.
func (db *DB) UpdateUserFolders(ctx context.Context, userID, rawFolderID, docsFolderID string) error {
	query := `UPDATE users SET raw_folder_id = $2, docs_folder_id = $3 WHERE id = $1`
	tag, err := db.admin.Exec(ctx, query, userID, rawFolderID, docsFolderID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// loginRequest is the body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// saveFoldersRequest is the body for POST /api/drive/save-folders.
// Folder fields accept a bare Drive folder ID or a shareable URL. UserID
// is accepted for wire compatibility with older clients and ignored; the
// acting user always comes from the session.
type saveFoldersRequest struct {
	RawFolderID  string `json:"rawFolderId" validate:"required"`
	DocsFolderID string `json:"docsFolderId" validate:"required"`
	UserID       string `json:"userId"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateRequest validates a request struct against its tags. Returns a
// nil error when valid.
func validateRequest(v interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("validation internal error: %w", err)
		}
		return err
	}
	return nil
}

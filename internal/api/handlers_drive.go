// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/logging"
)

// folderIDPattern matches the folder segment of a shareable Drive URL,
// e.g. https://drive.google.com/drive/folders/<ID>?usp=sharing.
var folderIDPattern = regexp.MustCompile(`folders/([a-zA-Z0-9_-]+)`)

// extractDriveFolderID reduces a shareable Drive URL to its bare folder
// identifier. Inputs that are already bare identifiers pass through
// trimmed. No verification is done that the folder exists or that the
// worker can reach it.
func extractDriveFolderID(urlOrID string) string {
	if m := folderIDPattern.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	return strings.TrimSpace(urlOrID)
}

// SaveFolders stores both Drive folder identifiers on the authenticated
// user's row. The acting user comes from the session; a userId in the
// body is ignored.
func (h *Handler) SaveFolders(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req saveFoldersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing rawFolderId/docsFolderId")
		return
	}
	if err := validateRequest(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing rawFolderId/docsFolderId")
		return
	}

	rawID := extractDriveFolderID(req.RawFolderID)
	docsID := extractDriveFolderID(req.DocsFolderID)
	if rawID == "" || docsID == "" {
		respondError(w, http.StatusBadRequest, "Missing rawFolderId/docsFolderId")
		return
	}

	if err := h.store.UpdateUserFolders(r.Context(), session.ID, rawID, docsID); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("save-folders: update failed")
		respondError(w, http.StatusInternalServerError, "Failed to save folder IDs")
		return
	}

	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

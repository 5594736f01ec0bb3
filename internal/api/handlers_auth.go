// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/database"
	"github.com/invoiceme/organizer/internal/logging"
	"github.com/invoiceme/organizer/internal/metrics"
	"github.com/invoiceme/organizer/internal/models"
)

// Login authenticates email+password against the users table and issues
// the session cookie.
//
// Unknown email and wrong password fail with the same message so the
// endpoint cannot be used to enumerate accounts, and the password is
// verified before the approval flag is consulted so an unapproved
// account's existence is only revealed to someone who knows its password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRequest(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.LoginFailures.Inc()
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("login: user lookup failed")
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.LoginFailures.Inc()
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.Approved {
		metrics.LoginFailures.Inc()
		respondError(w, http.StatusForbidden, "Your account is not approved yet. Please contact admin.")
		return
	}

	session := models.SessionUser{
		ID:      user.ID,
		OrgID:   user.OrgID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
	if err := h.sessions.SetCookie(w, session); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("login: cookie issue failed")
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	logging.Ctx(r.Context()).Info().Str("org_id", user.OrgID).Msg("login succeeded")
	respondJSON(w, http.StatusOK, loginResponse{OK: true, IsAdmin: user.IsAdmin})
}

// Logout clears the session cookie. Always succeeds, session or not.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP JSON API and static page routing.
//
// Every response uses the envelope the clients already poll against:
// {"ok": true, ...} on success and {"ok": false, "error": "..."} on
// failure. Error strings are human-readable; status codes carry the
// machine-checkable part of the contract (400 validation, 401 auth,
// 403 authorization, 404 missing, 5xx upstream).
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/logging"
	"github.com/invoiceme/organizer/internal/models"
)

// okResponse is the bare success envelope.
type okResponse struct {
	OK bool `json:"ok"`
}

// errorResponse is the failure envelope.
type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// loginResponse is returned by POST /api/auth/login.
type loginResponse struct {
	OK      bool `json:"ok"`
	IsAdmin bool `json:"is_admin"`
}

// createJobResponse is returned by POST /api/jobs/create.
type createJobResponse struct {
	OK    bool   `json:"ok"`
	JobID string `json:"jobId"`
}

// jobListResponse is returned by GET /api/jobs/list.
type jobListResponse struct {
	OK   bool         `json:"ok"`
	Jobs []models.Job `json:"jobs"`
}

// jobItemsResponse is returned by GET /api/jobs/items.
type jobItemsResponse struct {
	OK    bool             `json:"ok"`
	Items []models.JobItem `json:"items"`
}

// healthResponse is returned by GET /api/health.
type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{OK: false, Error: message})
}

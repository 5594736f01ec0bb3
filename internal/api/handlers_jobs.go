// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/database"
	"github.com/invoiceme/organizer/internal/logging"
	"github.com/invoiceme/organizer/internal/metrics"
	"github.com/invoiceme/organizer/internal/models"
)

// JobsCreate inserts a queued job for the authenticated user and notifies
// the worker.
//
// Identity is attributed from the session only; any userId in the request
// body is ignored, so a client cannot create jobs on another user's
// behalf. Both folder identifiers must have been saved beforehand.
//
// If the worker notification fails the job row stays in "queued" status
// with no rollback or retry; the failure is logged, counted, and stamped
// on the job's message so it is visible in the dashboard instead of
// stalling silently.
func (h *Handler) JobsCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.store.UserByID(r.Context(), session.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "User not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("jobs/create: user lookup failed")
		respondError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	if user.RawFolderID == "" || user.DocsFolderID == "" {
		respondError(w, http.StatusBadRequest, "Please save RAW + DOCS folder IDs first")
		return
	}

	job := &models.Job{
		OrgID:        user.OrgID,
		UserID:       user.ID,
		Status:       models.JobStatusQueued,
		Message:      "Queued",
		RawFolderID:  user.RawFolderID,
		DocsFolderID: user.DocsFolderID,
	}
	job, err = h.store.CreateJob(r.Context(), job)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("jobs/create: insert failed")
		respondError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	metrics.JobsCreated.Inc()

	if err := h.worker.Enqueue(r.Context(), job.ID); err != nil {
		metrics.WorkerEnqueueFailures.Inc()
		logging.Ctx(r.Context()).Error().Err(err).Str("job_id", job.ID).Msg("jobs/create: worker enqueue failed")

		// The queued row stays; stamp the failure so it shows up in the
		// job list rather than looking stuck for no reason.
		if serr := h.store.SetJobMessage(r.Context(), job.ID, "Worker notification failed: "+err.Error()); serr != nil {
			logging.Ctx(r.Context()).Warn().Err(serr).Str("job_id", job.ID).Msg("jobs/create: message stamp failed")
		}

		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, createJobResponse{OK: true, JobID: job.ID})
}

// JobsList returns the caller's organization's jobs, most recent first,
// capped at 50 rows. Non-admins are always scoped to their session org;
// an admin may pass ?orgId= to inspect another organization.
func (h *Handler) JobsList(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID := session.OrgID
	if q := r.URL.Query().Get("orgId"); q != "" && session.IsAdmin {
		orgID = q
	}
	if orgID == "" {
		respondError(w, http.StatusBadRequest, "Missing orgId")
		return
	}

	jobs, err := h.store.JobsByOrg(r.Context(), orgID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("jobs/list: query failed")
		respondError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	respondJSON(w, http.StatusOK, jobListResponse{OK: true, Jobs: jobs})
}

// JobItems returns a job's items in chronological order. The job must
// belong to the caller's organization; jobs outside it are reported as
// not found so existence does not leak across tenants.
func (h *Handler) JobItems(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "Missing jobId")
		return
	}

	job, err := h.store.JobByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("jobs/items: job lookup failed")
		respondError(w, http.StatusInternalServerError, "Failed to list job items")
		return
	}
	if job.OrgID != session.OrgID && !session.IsAdmin {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	items, err := h.store.JobItems(r.Context(), jobID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("jobs/items: query failed")
		respondError(w, http.StatusInternalServerError, "Failed to list job items")
		return
	}

	respondJSON(w, http.StatusOK, jobItemsResponse{OK: true, Items: items})
}

// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models defines the persisted entities and session types shared
// across the database, auth, and API layers.
package models

import "time"

// JobStatusQueued is the only status the web tier ever writes. Status is
// free text in the store; the worker owns every later transition, and the
// dashboard renders whatever it finds.
const JobStatusQueued = "queued"

// User is a row in the users table. Created by an out-of-band
// registration/admin flow; this service mutates only the two folder
// identifiers. The password hash never leaves the database layer in an
// API response.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	OrgID        string `json:"org_id"`
	Approved     bool   `json:"approved"`
	IsAdmin      bool   `json:"is_admin"`
	RawFolderID  string `json:"raw_folder_id"`
	DocsFolderID string `json:"docs_folder_id"`
}

// Job is one run of the external processing worker for one user/org.
// Rows carry a snapshot of the folder identifiers taken at creation time;
// after insertion the worker owns status, message, and finished_at.
type Job struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	RawFolderID  string    `json:"raw_folder_id"`
	DocsFolderID string    `json:"docs_folder_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobItem is one unit of work produced by the worker while processing a
// job. Entirely written by the worker; this service only lists them.
type JobItem struct {
	ID               string    `json:"id"`
	JobID            string    `json:"job_id"`
	SourceFilename   string    `json:"source_filename"`
	DocType          string    `json:"doc_type"`
	ExtractedDate    string    `json:"extracted_date"`
	ExtractedCompany string    `json:"extracted_company"`
	DocNumber        string    `json:"doc_number"`
	OutputPath       string    `json:"output_path"`
	Status           string    `json:"status"`
	Error            string    `json:"error"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionUser is the identity carried by a session cookie: user id, org,
// admin flag, and email. It is the minimal profile returned by login and
// the authority for org/user attribution on every write.
type SessionUser struct {
	ID      string `json:"id"`
	OrgID   string `json:"org_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

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

const jobColumns = `id, org_id, user_id, status, COALESCE(message, ''),
       COALESCE(raw_folder_id, ''), COALESCE(docs_folder_id, ''), created_at`

// CreateJob inserts a job row and returns it with the generated id and
// created_at. Status and the folder snapshot come from the caller, which
// attributes org/user from the session.
func (db *DB) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `INSERT INTO jobs (org_id, user_id, status, message, raw_folder_id, docs_folder_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	err := db.admin.QueryRow(ctx, query,
		job.OrgID, job.UserID, job.Status, job.Message,
		job.RawFolderID, job.DocsFolderID,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return job, nil
}

// JobByID fetches one job row.
func (db *DB) JobByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j := models.Job{}
	err := db.admin.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.OrgID, &j.UserID, &j.Status, &j.Message,
		&j.RawFolderID, &j.DocsFolderID, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &j, nil
}

const jobsByOrgQuery = `SELECT ` + jobColumns + ` FROM jobs
          WHERE org_id = $1
          ORDER BY created_at DESC
          LIMIT $2`

// JobsByOrg lists an organization's jobs, most recent first, capped at
// JobListLimit.
func (db *DB) JobsByOrg(ctx context.Context, orgID string) ([]models.Job, error) {
	rows, err := db.admin.Query(ctx, jobsByOrgQuery, orgID, JobListLimit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j := models.Job{}
		if err := rows.Scan(&j.ID, &j.OrgID, &j.UserID, &j.Status, &j.Message,
			&j.RawFolderID, &j.DocsFolderID, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return jobs, nil
}

// JobItems lists a job's items in chronological order.
func (db *DB) JobItems(ctx context.Context, jobID string) ([]models.JobItem, error) {
	query := `SELECT id, job_id, COALESCE(source_filename, ''), COALESCE(doc_type, ''),
	                 COALESCE(extracted_date, ''), COALESCE(extracted_company, ''),
	                 COALESCE(doc_number, ''), COALESCE(output_path, ''),
	                 COALESCE(status, ''), COALESCE(error, ''), created_at
	          FROM job_items
	          WHERE job_id = $1
	          ORDER BY created_at ASC`

	rows, err := db.admin.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []models.JobItem{}
	for rows.Next() {
		it := models.JobItem{}
		if err := rows.Scan(&it.ID, &it.JobID, &it.SourceFilename, &it.DocType,
			&it.ExtractedDate, &it.ExtractedCompany, &it.DocNumber,
			&it.OutputPath, &it.Status, &it.Error, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

// SetJobMessage updates a job's message, leaving status untouched.
func (db *DB) SetJobMessage(ctx context.Context, jobID, message string) error {
	tag, err := db.admin.Exec(ctx, `UPDATE jobs SET message = $2 WHERE id = $1`, jobID, message)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobListLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, JobListLimit, "job listings are capped at the most recent 50 rows")
}

func TestJobsByOrgQueryCapsAndOrders(t *testing.T) {
	t.Parallel()

	// The listing contract lives in the SQL: most recent first, bounded by
	// the limit parameter.
	assert.Contains(t, jobsByOrgQuery, "ORDER BY created_at DESC", "listing must be most recent first")
	assert.Contains(t, jobsByOrgQuery, "LIMIT $2", "listing must bind the row cap")
	assert.Contains(t, jobsByOrgQuery, "WHERE org_id = $1", "listing must be org scoped")
}

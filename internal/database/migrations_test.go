// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "no migration files embedded")

	for _, e := range entries {
		name := e.Name()
		assert.True(t, strings.HasSuffix(name, ".sql"), "unexpected file %s", name)

		data, err := migrationsFS.ReadFile("migrations/" + name)
		require.NoError(t, err)

		// Every migration must be goose-annotated and reversible.
		content := string(data)
		assert.Contains(t, content, "+goose Up", "%s missing Up annotation", name)
		assert.Contains(t, content, "+goose Down", "%s missing Down annotation", name)
	}
}

func TestInitialMigrationCreatesSchema(t *testing.T) {
	t.Parallel()

	data, err := migrationsFS.ReadFile("migrations/00001_create_tables.sql")
	require.NoError(t, err)

	content := string(data)
	for _, table := range []string{"users", "jobs", "job_items"} {
		assert.Contains(t, content, "CREATE TABLE IF NOT EXISTS "+table, "missing table %s", table)
	}
	assert.Contains(t, content, "jobs_org_created_idx", "missing job listing index")
	assert.Contains(t, content, "job_items_job_created_idx", "missing item listing index")
}

// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/config"
	"github.com/invoiceme/organizer/internal/database"
	"github.com/invoiceme/organizer/internal/models"
)

// fakeStore is an in-memory database.Store for handler tests.
type fakeStore struct {
	users map[string]*models.User // keyed by id
	jobs  map[string]*models.Job  // keyed by id
	items map[string][]models.JobItem

	jobsByOrg   []models.Job // returned by JobsByOrg
	created     []*models.Job
	messages    map[string]string
	createErr   error
	pingErr     error
	folderCalls []folderUpdate
}

type folderUpdate struct {
	userID, rawID, docsID string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		jobs:     map[string]*models.Job{},
		items:    map[string][]models.JobItem{},
		messages: map[string]string{},
	}
}

func (f *fakeStore) addUser(u models.User) {
	f.users[u.ID] = &u
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) UserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) UpdateUserFolders(_ context.Context, userID, rawID, docsID string) error {
	u, ok := f.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	u.RawFolderID, u.DocsFolderID = rawID, docsID
	f.folderCalls = append(f.folderCalls, folderUpdate{userID, rawID, docsID})
	return nil
}

func (f *fakeStore) CreateJob(_ context.Context, job *models.Job) (*models.Job, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	job.ID = "job-" + time.Now().Format("150405.000000000")
	job.CreatedAt = time.Now()
	f.jobs[job.ID] = job
	f.created = append(f.created, job)
	return job, nil
}

func (f *fakeStore) JobByID(_ context.Context, id string) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

// JobsByOrg mirrors the Postgres listing contract: org scoped, most recent
// first, capped at JobListLimit rows.
func (f *fakeStore) JobsByOrg(_ context.Context, orgID string) ([]models.Job, error) {
	out := []models.Job{}
	for _, j := range f.jobsByOrg {
		if j.OrgID == orgID {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > database.JobListLimit {
		out = out[:database.JobListLimit]
	}
	return out, nil
}

func (f *fakeStore) JobItems(_ context.Context, jobID string) ([]models.JobItem, error) {
	return f.items[jobID], nil
}

func (f *fakeStore) SetJobMessage(_ context.Context, jobID, message string) error {
	if _, ok := f.jobs[jobID]; !ok {
		return database.ErrNotFound
	}
	f.messages[jobID] = message
	return nil
}

func (f *fakeStore) Ping(_ context.Context) error { return f.pingErr }

var _ database.Store = (*fakeStore)(nil)

// fakeWorker records enqueue calls and optionally fails them.
type fakeWorker struct {
	err   error
	calls []string
}

func (f *fakeWorker) Enqueue(_ context.Context, jobID string) error {
	f.calls = append(f.calls, jobID)
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CookieSecret:       "0123456789abcdef0123456789abcdef",
			SessionTTL:         7 * 24 * time.Hour,
			CookieSecure:       true,
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
			LoginLimitRequests: 1000,
			LoginLimitWindow:   time.Minute,
		},
		Server: config.ServerConfig{WebDir: "./testdata"},
	}
}

func newTestHandler(t *testing.T, store database.Store, w WorkerClient) (*Handler, *auth.Sessions) {
	t.Helper()
	cfg := testConfig()
	sessions, err := auth.NewSessions(cfg.Security)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	return NewHandler(store, sessions, w, cfg), sessions
}

// withSession attaches a session user to the request context the way
// auth.RequireUser does in production.
func withSession(r *http.Request, user models.SessionUser) *http.Request {
	return r.WithContext(auth.ContextWithUser(r.Context(), user))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

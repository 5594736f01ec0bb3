// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package worker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/config"
)

func newTestClient(baseURL string) *Client {
	return New(config.WorkerConfig{
		BaseURL: baseURL + "/", // trailing slash must be tolerated
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
}

func TestEnqueue_Success(t *testing.T) {
	t.Parallel()

	var gotPath, gotToken, gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("x-worker-token")
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Enqueue(context.Background(), "job-123"); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if gotPath != "/enqueue" {
		t.Errorf("path = %q, want /enqueue", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("token header = %q, want test-token", gotToken)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotBody["jobId"] != "job-123" {
		t.Errorf("body = %v, want jobId=job-123", gotBody)
	}
}

func TestEnqueue_SurfacesWorkerDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid worker token"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Enqueue(context.Background(), "job-123")
	if err == nil {
		t.Fatal("Enqueue succeeded, want error")
	}
	if !strings.Contains(err.Error(), "Invalid worker token") {
		t.Errorf("error = %q, want worker detail surfaced", err)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error = %q, want status code", err)
	}
}

func TestEnqueue_ErrorFieldFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"queue full"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Enqueue(context.Background(), "job-123")
	if err == nil || !strings.Contains(err.Error(), "queue full") {
		t.Errorf("error = %v, want error field surfaced", err)
	}
}

func TestEnqueue_GenericFailureMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>nginx</html>`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Enqueue(context.Background(), "job-123")
	if err == nil || !strings.Contains(err.Error(), "Worker enqueue failed") {
		t.Errorf("error = %v, want generic failure message", err)
	}
}

func TestEnqueue_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 5; i++ {
		if err := c.Enqueue(context.Background(), "job-123"); err == nil {
			t.Fatal("Enqueue succeeded against failing worker")
		}
	}

	// Breaker is open now; further calls fail without reaching the worker.
	before := hits.Load()
	err := c.Enqueue(context.Background(), "job-123")
	if err == nil {
		t.Fatal("Enqueue succeeded with open breaker")
	}
	if got := hits.Load(); got != before {
		t.Errorf("worker hit %d times after breaker opened, want 0", got-before)
	}
}

func TestEnqueue_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newTestClient(srv.URL).Enqueue(ctx, "job-123"); err == nil {
		t.Error("Enqueue succeeded with cancelled context")
	}
}

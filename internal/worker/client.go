// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package worker is the HTTP client for the external document-processing
// worker service. The worker is an opaque collaborator: this client only
// notifies it that a queued job exists; all scanning, classification, and
// folder placement happen on the worker's side.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/invoiceme/organizer/internal/config"
)

// tokenHeader authenticates this service to the worker.
const tokenHeader = "x-worker-token"

// enqueueRequest is the body for POST /enqueue.
type enqueueRequest struct {
	JobID string `json:"jobId"`
}

// workerError is the error shape FastAPI-style services return.
type workerError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// Client calls the worker over HTTP with a bearer-style token header.
// Calls run behind a circuit breaker so a dead worker fails fast instead
// of holding request goroutines for the full timeout.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// New builds a worker client from config. The per-call timeout is explicit
// rather than relying on platform defaults.
func New(cfg config.WorkerConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "worker-enqueue",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
	}
}

// Enqueue asks the worker to run the given job. A non-2xx response
// surfaces the worker's detail/error field as the failure reason.
func (c *Client) Enqueue(ctx context.Context, jobID string) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.enqueue(ctx, jobID)
	})
	if err != nil {
		return fmt.Errorf("worker enqueue: %w", err)
	}
	return nil
}

func (c *Client) enqueue(ctx context.Context, jobID string) error {
	body, err := json.Marshal(enqueueRequest{JobID: jobID})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enqueue", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Bounded read; the worker's error payloads are small.
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	werr := workerError{}
	_ = json.Unmarshal(data, &werr)

	reason := werr.Detail
	if reason == "" {
		reason = werr.Error
	}
	if reason == "" {
		reason = "Worker enqueue failed"
	}
	return fmt.Errorf("%s (status %d)", reason, resp.StatusCode)
}

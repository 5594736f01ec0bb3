// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics provides Prometheus instrumentation for the HTTP API,
// job creation flow, and worker notifications. Metrics are exposed at
// /metrics by the router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration observes per-endpoint request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestsTotal counts requests by endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ActiveRequests gauges in-flight HTTP requests.
	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// JobsCreated counts job rows inserted by the create endpoint.
	JobsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_created_total",
			Help: "Total number of jobs created",
		},
	)

	// WorkerEnqueueFailures counts failed worker notifications. Each one
	// is a job left queued with no progress until manually retried.
	WorkerEnqueueFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_enqueue_failures_total",
			Help: "Total number of failed worker enqueue notifications",
		},
	)

	// LoginFailures counts rejected login attempts.
	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		ActiveRequests.Inc()
		return
	}
	ActiveRequests.Dec()
}

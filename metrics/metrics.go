// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camera_registry_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "camera_registry_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Cameras = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "camera_registry_cameras",
			Help: "Number of camera records in the collection after the last load or save",
		},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camera_registry_store_errors_total",
			Help: "Storage failures by operation (load, save)",
		},
		[]string{"operation"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camera_registry_login_attempts_total",
			Help: "Login attempts by result (success, invalid)",
		},
		[]string{"result"},
	)

	LiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "camera_registry_live_subscribers",
			Help: "Connected websocket subscribers of the live camera feed",
		},
	)
)

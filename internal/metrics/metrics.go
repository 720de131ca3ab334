// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crowd_alert"

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Классификация толпы
var (
	PingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crowd",
			Name:      "pings_total",
			Help:      "Total location pings accepted",
		},
	)

	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crowd",
			Name:      "classifications_total",
			Help:      "Location classifications by result",
		},
		[]string{"result"},
	)

	ActiveParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "crowd",
			Name:      "active_participants",
			Help:      "Participants active in the last computed snapshot",
		},
	)

	CrowdedParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "crowd",
			Name:      "crowded_participants",
			Help:      "Participants flagged as crowded in the last computed snapshot",
		},
	)
)

// Оповещения
var (
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "total",
			Help:      "Crowd alerts by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "notifications_total",
			Help:      "Per-recipient notifications by status",
		},
		[]string{"status"},
	)

	SMSDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "deliveries_total",
			Help:      "SMS gateway deliveries by status",
		},
		[]string{"status"},
	)
)

// Package metrics defines and registers all custom Prometheus metrics for the
// onboarding portal. It is the single source of truth for metric names,
// labels, and help strings; registration happens at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onboarding"

// ── Scheduling metrics ────────────────────────────────────────────────────────

// BookingsCreatedTotal counts successfully booked appointments.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of appointments booked.",
	},
)

// BookingConflictsTotal counts booking attempts rejected because the slot was
// already taken, whether by the pre-insert check or the unique index.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking attempts rejected as double-bookings.",
	},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// CredentialsFulfilledTotal counts credential fulfillments.
// Label:
//   - method: "text" or "file"
var CredentialsFulfilledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_fulfilled_total",
		Help:      "Total number of credential fulfillments, by submission method.",
	},
	[]string{"method"},
)

// UploadsRejectedTotal counts rejected file uploads.
// Label:
//   - reason: "too_large" or "unsupported_type"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of rejected credential file uploads, by reason.",
	},
	[]string{"reason"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityEventsTotal counts audit events that completed processing.
// Labels:
//   - kind: the event kind (e.g. "booking_created")
//   - result: "ok" or "error"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ActivityProcessingDuration measures how long a single activity event takes
// from dequeue to persistence.
var ActivityProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Package metrics declares the storefront's custom Prometheus collectors.
// They register with the default registry on package init and are exposed
// on GET /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential operations.
// Labels:
//   - op: "register", "login" or "forgot_password"
//   - result: "success", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Credential operations by kind and outcome.",
	},
	[]string{"op", "result"},
)

// TokenRejectionsTotal counts requests turned away by the sign-in check.
// Label:
//   - reason: token.InvalidTokenError reason ("no token supplied", "expired", ...)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Requests rejected for a missing or invalid session token.",
	},
	[]string{"reason"},
)

// AdminRejectionsTotal counts requests refused by the admin check.
// Label:
//   - reason: "not_admin" or "lookup_error"
var AdminRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_rejections_total",
		Help:      "Requests refused on admin-only routes.",
	},
	[]string{"reason"},
)

// ── Orders ────────────────────────────────────────────────────────────────────

// CheckoutsTotal counts checkout outcomes.
// Label:
//   - result: "approved", "declined", "replayed" or "error"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	},
	[]string{"result"},
)

// OrderStatusUpdatesTotal counts admin status writes.
// Label:
//   - status: the status written, or "invalid" when rejected
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Order status updates by target status.",
	},
	[]string{"status"},
)

// ── Events ────────────────────────────────────────────────────────────────────

// EventsQueueDepth tracks pending events in each dispatcher worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventsPublishedTotal counts publish attempts.
// Labels:
//   - type: domain event type
//   - result: "ok", "error" or "dropped"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Domain events handed to the publisher, by type and outcome.",
	},
	[]string{"type", "result"},
)

var EventPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_publish_duration_seconds",
		Help:      "Time spent publishing a single domain event.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

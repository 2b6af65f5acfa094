// Package metrics defines and registers all custom Prometheus metrics for the
// commerce API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts completed account registrations.
// Label:
//   - role_request: the elevated role asked for at sign-up, or "none"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by requested role.",
	},
	[]string{"role_request"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success", "mismatch", or "invalid"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// RoleDecisionsTotal counts decided role upgrade requests.
// Label:
//   - decision: "approved" or "rejected"
var RoleDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_decisions_total",
		Help:      "Total number of role upgrade requests decided, by decision.",
	},
	[]string{"decision"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartsSubmittedTotal counts accepted cart submissions.
var CartsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carts_submitted_total",
		Help:      "Total number of cart submissions accepted.",
	},
)

// PricingRequestsTotal counts calls to the pricing collaborator.
// Label:
//   - result: "success" or "error"
var PricingRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_requests_total",
		Help:      "Total number of pricing requests, by result.",
	},
	[]string{"result"},
)

// PricingDuration measures the round-trip time of a pricing collaborator call.
var PricingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_duration_seconds",
		Help:      "Duration of pricing collaborator calls.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsSentTotal counts delivery attempts made by the mail dispatcher.
// Label:
//   - status: "sent" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of email delivery attempts, by status.",
	},
	[]string{"status"},
)

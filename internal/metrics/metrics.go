// Package metrics defines the Prometheus metrics for the RentaRide client
// core. It is the single source of truth for metric names, labels, and help
// strings; everything registers with the default registry via promauto at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rentaride"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "rejected", "network_error", "server_error", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "success", "degraded" (accepted without token), "conflict", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts route-guard evaluations by decision kind.
// Label:
//   - decision: "granted", "redirect_to_login", "redirect_unauthorized", "redirect_away"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard evaluations, labelled by decision.",
	},
	[]string{"decision"},
)

// SessionTeardownsTotal counts automatic session clears.
// Label:
//   - reason: "logout", "expired", "malformed_token", "unauthorized_response"
var SessionTeardownsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of session clears, labelled by trigger.",
	},
	[]string{"reason"},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// tourism API. It is the single source of truth for metric names, labels, and
// help strings. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tourism"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - actor_type: "user", "tourguide", "admin", or "shared" for /users/login
//   - result: "success", "invalid", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by actor type and result.",
	},
	[]string{"actor_type", "result"},
)

// RegistrationsTotal counts signup attempts.
// Labels:
//   - actor_type
//   - result: "success", "invalid", "duplicate", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of signup attempts, by actor type and result.",
	},
	[]string{"actor_type", "result"},
)

// TokenRevocationsTotal counts tokens removed by logout.
var TokenRevocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_revocations_total",
		Help:      "Total number of tokens revoked by logout.",
	},
	[]string{"actor_type"},
)

// GateRejectionsTotal counts requests refused by the request gate. Clients
// always see the same 401; the reason is only recorded here.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token", "actor_type"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// RegisterAuditQueue exposes the audit dispatcher's backlog and drop count.
// Call it once at startup.
func RegisterAuditQueue(depth func() int, dropped func() int64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events waiting to be persisted.",
	}, func() float64 { return float64(depth()) })

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth events dropped because the queue was full.",
	}, func() float64 { return float64(dropped()) })
}

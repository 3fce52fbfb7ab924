// Package metrics defines and registers all custom Prometheus metrics for the
// portal gate. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal_gate"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts navigation outcomes.
// Labels:
//   - kind: allow, redirect, pending, upsell or maintenance
//   - guard: the guard that decided, or "none" when everything allowed
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of navigation decisions, by kind and deciding guard.",
	},
	[]string{"kind", "guard"},
)

// ForcedLogoutsTotal counts principals cleared because they had no landing route.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions logged out by the admin-area fallback.",
	},
)

// TenantSwitchesTotal counts explicit slugs that replaced a different persisted slug.
var TenantSwitchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenant_switches_total",
		Help:      "Total number of tenant switches observed during navigation.",
	},
)

// ── Provider metrics ──────────────────────────────────────────────────────────

// ProviderFetchTotal counts provider fetches.
// Labels:
//   - provider: "status" or "entitlements"
//   - result: "ok" or "error"
var ProviderFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_fetch_total",
		Help:      "Total number of provider fetches, by provider and result.",
	},
	[]string{"provider", "result"},
)

// ProviderFetchDuration measures how long provider fetches take.
var ProviderFetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_fetch_duration_seconds",
		Help:      "Duration of provider fetches against the backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"provider"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the sessions currently held in memory.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of sessions held by the registry.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit events that could not be stored or were dropped.
// Label:
//   - reason: "insert_failed" or "queue_full"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
	[]string{"reason"},
)

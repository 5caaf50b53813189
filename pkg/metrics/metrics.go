// Package metrics defines and registers all custom Prometheus metrics for the
// Ryze lifestyle API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ryze"

// ── Purchase metrics ──────────────────────────────────────────────────────────

// IntentsRequestedTotal counts purchase intents placed in the confirmation slot.
// Labels:
//   - kind: "data_package", "document" or "subscription"
//   - replaced: "true" when the request overwrote a pending intent
var IntentsRequestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_requested_total",
		Help:      "Total number of purchase intents awaiting confirmation, by kind.",
	},
	[]string{"kind", "replaced"},
)

// PurchasesTotal counts confirmed intents by result.
// Labels:
//   - kind: intent kind
//   - result: "applied" or "insufficient_funds"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of confirmed purchases, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ConfirmationsCancelledTotal counts intents discarded with cancel.
var ConfirmationsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_cancelled_total",
		Help:      "Total number of pending purchases the user backed out of.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of live sessions held in memory.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Generation metrics ────────────────────────────────────────────────────────

// GenerationsTotal counts text generation calls.
// Labels:
//   - kind: "tutor_reply" or "document_overview"
//   - result: "ok", "fallback", "cached", "discarded" or "dropped"
var GenerationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Total number of text generation requests, by kind and result.",
	},
	[]string{"kind", "result"},
)

// GenerationDuration measures how long the text generation collaborator takes.
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of text generation calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"kind"},
)

// GenerationQueueDepth tracks the jobs waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var GenerationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "generation_queue_depth",
		Help:      "Current number of generation jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

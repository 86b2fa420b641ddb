// Package metrics defines all custom Prometheus metrics for the TaskFlow
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics are registered with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskflow"

// ── Board metrics ─────────────────────────────────────────────────────────────

// BoardsCreatedTotal counts newly created boards.
var BoardsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boards_created_total",
		Help:      "Total number of boards created.",
	},
)

// AccessDeniedTotal counts requests rejected by the membership gate.
// Label:
//   - resource: which route group was targeted ("board", "list", "card")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected because the actor is not a board member.",
	},
	[]string{"resource"},
)

// ── Card metrics ──────────────────────────────────────────────────────────────

// CardsMovedTotal counts processed card moves.
var CardsMovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_moved_total",
		Help:      "Total number of card moves processed.",
	},
)

// ── Activity feed metrics ─────────────────────────────────────────────────────

// ActivityRecordedTotal counts activity entries successfully persisted.
// Label:
//   - action: the activity action (e.g. "card_moved")
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity entries persisted, by action.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts activity entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed to persist.",
	},
)

// ActivityDroppedTotal counts activity entries dropped because a worker
// queue was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity entries dropped due to a full worker queue.",
	},
)

// ActivityQueueDepth tracks the number of entries waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// Package metrics defines all custom Prometheus metrics for the EventSphere
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventsphere"

// SignupsTotal counts successful registrations.
// Label:
//   - kind: "user" or "admin"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful registrations, by identity kind.",
	},
	[]string{"kind"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "user" or "admin"
//   - result: "success", "failure", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by identity kind and result.",
	},
	[]string{"kind", "result"},
)

// EventsCreatedTotal counts successfully created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// EventMutationsTotal counts update and delete attempts.
// Labels:
//   - operation: "update" or "delete"
//   - result: "ok", "forbidden", "not_found", "invalid", or "error"
var EventMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_mutations_total",
		Help:      "Total number of event update/delete attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

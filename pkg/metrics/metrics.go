// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the pet engine.
// Collectors are package-level and registered once by the metrics server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "virtual_pet"

var (
	// FileWritesTotal counts persisted file writes by file kind and result.
	FileWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_writes_total",
			Help:      "Total number of data file writes",
		},
		[]string{"file", "result"},
	)

	// WatchEventsTotal counts filesystem events observed per watched file and
	// what the watcher did with them.
	WatchEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "Total number of file change events observed",
		},
		[]string{"file", "outcome"},
	)

	// ReloadsTotal counts reloads triggered by external file edits.
	ReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of reloads after external file edits",
		},
		[]string{"file", "result"},
	)

	// DecayTicksTotal counts decay ticks by outcome (applied, skipped, failed).
	DecayTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decay_ticks_total",
			Help:      "Total number of decay scheduler ticks",
		},
		[]string{"outcome"},
	)

	// PublishesTotal counts snapshots handed to listeners.
	PublishesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Total number of snapshot broadcasts",
		},
	)

	// OperationsTotal counts game operations by name and result.
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of game operations",
		},
		[]string{"operation", "result"},
	)
)

// Collectors returns every package-level collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		FileWritesTotal,
		WatchEventsTotal,
		ReloadsTotal,
		DecayTicksTotal,
		PublishesTotal,
		OperationsTotal,
	}
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

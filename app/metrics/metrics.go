// Package metrics exposes Prometheus collectors for the herald pipeline.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	feedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herald_feed_fetches_total",
			Help: "Total feed fetch attempts, labeled by feed and status.",
		},
		[]string{"feed", "status"},
	)

	entriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herald_entries_total",
			Help: "Total entries processed, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	summariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herald_summaries_total",
			Help: "Total summarization attempts, labeled by provider and status.",
		},
		[]string{"provider", "status"},
	)

	floodWaitsSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "herald_flood_waits_seconds",
			Help:    "Histogram of server-directed flood-control wait durations.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// Plain counters mirrored for the /stats endpoint, which reports a
	// JSON snapshot without going through the Prometheus registry.
	feedsFetched atomic.Int64
	feedErrors   atomic.Int64
	delivered    atomic.Int64
	duplicates   atomic.Int64
	skipped      atomic.Int64
	dropped      atomic.Int64
)

// Entry outcomes recorded by ObserveEntry.
const (
	OutcomeDelivered = "delivered"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
	OutcomeDropped   = "dropped"
)

// ObserveFetch records one feed fetch attempt.
func ObserveFetch(feed string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		feedErrors.Add(1)
	}
	feedsFetched.Add(1)
	feedFetchesTotal.WithLabelValues(feed, status).Inc()
}

// ObserveEntry records the terminal outcome of one entry.
func ObserveEntry(outcome string) {
	entriesTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case OutcomeDelivered:
		delivered.Add(1)
	case OutcomeDuplicate:
		duplicates.Add(1)
	case OutcomeSkipped:
		skipped.Add(1)
	case OutcomeDropped:
		dropped.Add(1)
	}
}

// ObserveSummary records one summarization attempt for the given provider.
func ObserveSummary(provider string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	summariesTotal.WithLabelValues(provider, status).Inc()
}

// ObserveFloodWait records the duration of a flood-control suspension.
func ObserveFloodWait(seconds float64) {
	floodWaitsSeconds.Observe(seconds)
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Stats is a point-in-time snapshot of the pipeline counters.
type Stats struct {
	FeedsFetched int64 `json:"feeds_fetched"`
	FeedErrors   int64 `json:"feed_errors"`
	Delivered    int64 `json:"delivered"`
	Duplicates   int64 `json:"duplicates"`
	Skipped      int64 `json:"skipped"`
	Dropped      int64 `json:"dropped"`
}

// Snapshot returns the current counter values.
func Snapshot() Stats {
	return Stats{
		FeedsFetched: feedsFetched.Load(),
		FeedErrors:   feedErrors.Load(),
		Delivered:    delivered.Load(),
		Duplicates:   duplicates.Load(),
		Skipped:      skipped.Load(),
		Dropped:      dropped.Load(),
	}
}

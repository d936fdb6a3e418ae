package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the scan pipeline, declared with promauto so
// registration happens at package init.

var scanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "xvenue_arb",
		Subsystem: "scanner",
		Name:      "scan_duration_seconds",
		Help:      "Time to run one full catalog-to-opportunities scan.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	},
)

var scansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "xvenue_arb",
		Subsystem: "scanner",
		Name:      "scans_total",
		Help:      "Total number of scan pipeline runs, by outcome.",
	},
	[]string{"outcome"},
)

var cacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "xvenue_arb",
		Subsystem: "scanner",
		Name:      "cache_hits_total",
		Help:      "Scan requests served from the TTL cache or a coalesced in-flight scan.",
	},
	[]string{"source"},
)

var venueFetchFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "xvenue_arb",
		Subsystem: "scanner",
		Name:      "venue_fetch_failures_total",
		Help:      "Recovered venue-client failures, by venue and error kind.",
	},
	[]string{"venue", "kind"},
)

var opportunitiesFound = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "xvenue_arb",
		Subsystem: "scanner",
		Name:      "opportunities_found",
		Help:      "Opportunities surfaced by the most recent scan, by type.",
	},
	[]string{"type"},
)

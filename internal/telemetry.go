package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is pure ambient observability around the scheduler, grounded on
// the package-level promauto.New* pattern used for background-scheduler
// instrumentation in the retrieval pack. It must never influence scheduling
// decisions — only count them — so EventGraph works identically whether or
// not anything ever scrapes these.
type Metrics struct {
	passesTotal      prometheus.Counter
	linksActivated   prometheus.Counter
	cycleBreaksTotal prometheus.Counter
}

// Package-level counters, registered once against the default registry —
// every EventGraph in the process shares them, the same way a host
// application shares one Prometheus registry regardless of how many
// internal component instances it runs.
var (
	passesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventgraph_passes_total",
		Help: "Total number of propagation passes run across all event scopes.",
	})
	linksActivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventgraph_links_activated_total",
		Help: "Total number of link callback invocations.",
	})
	cycleBreaksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventgraph_cycle_breaks_total",
		Help: "Total number of cycle-break edges discovered while building involved sets.",
	})
)

// DefaultMetrics returns the shared, process-wide counter set.
func DefaultMetrics() *Metrics {
	return &Metrics{
		passesTotal:      passesTotal,
		linksActivated:   linksActivated,
		cycleBreaksTotal: cycleBreaksTotal,
	}
}

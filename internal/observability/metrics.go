package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh pipeline.
type Metrics struct {
	CyclesTotal   *prometheus.CounterVec // labels: outcome={success,failure}
	FetchAttempts *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram

	EventsProcessed prometheus.Counter
	EventsDuplicate prometheus.Counter
	EventsRejected  *prometheus.CounterVec // labels: reason={missing_magnitude,malformed_geometry,out_of_range}

	NearbyEvents     prometheus.Gauge
	LastRefresh      prometheus.Gauge
	SchedulerRunning prometheus.Gauge
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.CyclesTotal,
		m.FetchAttempts,
		m.FetchDuration,
		m.EventsProcessed,
		m.EventsDuplicate,
		m.EventsRejected,
		m.NearbyEvents,
		m.LastRefresh,
		m.SchedulerRunning,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "refresh_cycles_total",
			Help:      "Refresh cycles by outcome.",
		}, []string{"outcome"}),
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "fetch_attempts_total",
			Help:      "Per-source fetch attempts by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_watch",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete feed fetch including fallback attempts.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "events_processed_total",
			Help:      "Total raw feed features presented to the proximity engine.",
		}),
		EventsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "events_duplicate_total",
			Help:      "Features skipped because their id was already admitted.",
		}),
		EventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "events_rejected_total",
			Help:      "Features excluded from the nearby set by reason.",
		}, []string{"reason"}),
		NearbyEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_watch",
			Name:      "nearby_events",
			Help:      "Number of events in the most recently published snapshot.",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_watch",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful refresh cycle.",
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_watch",
			Name:      "scheduler_running",
			Help:      "1 while the refresh scheduler is active, 0 otherwise.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_watch",
			Name:      "publish_errors_total",
			Help:      "Snapshot publications that failed downstream delivery.",
		}),
	}
}

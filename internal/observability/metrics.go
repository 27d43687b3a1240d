package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// profile assembly batch.
type Metrics struct {
	ZonesProcessed   prometheus.Counter
	ZoneErrors       prometheus.Counter
	BatchesCompleted prometheus.Counter
	BatchRunning     prometheus.Gauge

	BatchDuration prometheus.Histogram

	// Upstream fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram
	CacheHits     prometheus.Counter
}

// NewMetrics creates and registers all batch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ZonesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_profiler",
			Name:      "zones_processed_total",
			Help:      "Total zones reduced to a complete climate profile.",
		}),
		ZoneErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_profiler",
			Name:      "zone_errors_total",
			Help:      "Total zones recorded with an error document.",
		}),
		BatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_profiler",
			Name:      "batches_completed_total",
			Help:      "Total batch documents assembled and written.",
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_profiler",
			Name:      "batch_running",
			Help:      "1 while a batch is being assembled, 0 otherwise.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_profiler",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete zone batch including inter-zone delays.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_profiler",
			Name:      "fetch_requests_total",
			Help:      "Upstream POWER API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_profiler",
			Name:      "fetch_duration_seconds",
			Help:      "POWER API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_profiler",
			Name:      "cache_hits_total",
			Help:      "Fetches served from the in-memory record cache.",
		}),
	}

	prometheus.MustRegister(
		m.ZonesProcessed,
		m.ZoneErrors,
		m.BatchesCompleted,
		m.BatchRunning,
		m.BatchDuration,
		m.FetchRequests,
		m.FetchDuration,
		m.CacheHits,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ZonesProcessed:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_profiler", Name: "zones_processed_total"}),
		ZoneErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_profiler", Name: "zone_errors_total"}),
		BatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_profiler", Name: "batches_completed_total"}),
		BatchRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_profiler", Name: "batch_running"}),
		BatchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_profiler", Name: "batch_duration_seconds"}),
		FetchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_profiler", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_profiler", Name: "fetch_duration_seconds"}),
		CacheHits:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_profiler", Name: "cache_hits_total"}),
	}
}

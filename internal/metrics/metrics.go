// Package metrics provides the Prometheus metrics "pgexfmt serve" exposes
// at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every metric pgexfmt registers.
type Collector struct {
	LoadsTotal    *prometheus.CounterVec
	LoadErrors    *prometheus.CounterVec
	LoadDuration  *prometheus.HistogramVec
	SavesTotal    *prometheus.CounterVec
	SaveDuration  *prometheus.HistogramVec
	WatchedEvents *prometheus.CounterVec
}

// New registers and returns a fresh Collector.
func New() *Collector {
	return &Collector{
		LoadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgexfmt",
				Name:      "loads_total",
				Help:      "Total number of documents parsed.",
			},
			[]string{"format"},
		),
		LoadErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgexfmt",
				Name:      "load_errors_total",
				Help:      "Total number of documents that failed to parse.",
			},
			[]string{"format"},
		),
		LoadDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgexfmt",
				Name:      "load_duration_seconds",
				Help:      "Time spent parsing a document.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		SavesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgexfmt",
				Name:      "saves_total",
				Help:      "Total number of documents serialized.",
			},
			[]string{"format"},
		),
		SaveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgexfmt",
				Name:      "save_duration_seconds",
				Help:      "Time spent serializing a document.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		WatchedEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgexfmt",
				Name:      "watch_events_total",
				Help:      "Filesystem events observed by \"pgexfmt watch\".",
			},
			[]string{"op"},
		),
	}
}

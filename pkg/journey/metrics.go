package journey

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journey_load_total",
			Help: "Total number of table of contents loads executed.",
		},
	)

	LoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journey_load_duration_seconds",
			Help:    "Duration of table of contents loads in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	AppendTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journey_append_total",
			Help: "Total number of record appends executed.",
		},
	)

	CompactTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journey_compact_total",
			Help: "Total number of compactions executed.",
		},
	)

	CompactDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journey_compact_duration_seconds",
			Help:    "Duration of compactions in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		LoadTotal,
		LoadDuration,
		AppendTotal,
		CompactTotal,
		CompactDuration,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

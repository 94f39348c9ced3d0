// Package metrics provides Prometheus implementations of the event bus
// and render cache metrics interfaces.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic/renderer"
)

// Dispatch is synchronous and usually sub-millisecond.
var dispatchBuckets = prometheus.ExponentialBuckets(0.000001, 4, 12)

// busMetrics implements event.Metrics using Prometheus.
type busMetrics struct {
	messagesTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
}

// NewBusMetrics creates a new Prometheus implementation of event.Metrics.
func NewBusMetrics(reg prometheus.Registerer) event.Metrics {
	m := &busMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schview_bus_messages_total",
			Help: "Total number of messages sent on the event bus",
		}, []string{"kind"}),

		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schview_bus_dispatch_duration_seconds",
			Help:    "Time for all listeners to handle a message, in seconds",
			Buckets: dispatchBuckets,
		}, []string{"kind"}),
	}

	reg.MustRegister(m.messagesTotal, m.dispatchDuration)
	return m
}

func (m *busMetrics) MessageDispatched(kind string, _ int, elapsed time.Duration) {
	m.messagesTotal.WithLabelValues(kind).Inc()
	m.dispatchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// cacheMetrics implements renderer.CacheMetrics using Prometheus.
type cacheMetrics struct {
	entries  prometheus.Gauge
	rebuilds *prometheus.CounterVec
}

// NewCacheMetrics creates a new Prometheus implementation of
// renderer.CacheMetrics.
func NewCacheMetrics(reg prometheus.Registerer) renderer.CacheMetrics {
	m := &cacheMetrics{
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schview_render_cache_entries",
			Help: "Number of entities in the render cache",
		}),

		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schview_render_cache_rebuilds_total",
			Help: "Total number of drawables built, by message kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.entries, m.rebuilds)
	return m
}

func (m *cacheMetrics) EntriesChanged(n int) {
	m.entries.Set(float64(n))
}

func (m *cacheMetrics) Rebuilt(kind string) {
	m.rebuilds.WithLabelValues(kind).Inc()
}

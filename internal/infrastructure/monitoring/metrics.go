// Package monitoring handles Prometheus metrics for the consumption engine
// and the stock predictor.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters and histograms for the engine's hot paths
type Metrics struct {
	registry *prometheus.Registry

	consumptionRunsTotal *prometheus.CounterVec
	consumptionDuration  prometheus.Histogram

	predictorRefreshesTotal prometheus.Counter

	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the engine metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		consumptionRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consumption_runs_total",
				Help: "Total number of meal consumption runs by outcome",
			},
			[]string{"outcome"},
		),
		consumptionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "consumption_run_duration_seconds",
				Help:    "Duration of one consumption run in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		predictorRefreshesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "predictor_refreshes_total",
				Help: "Total number of recommendation refresh computations",
			},
		),
		cacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits by cache name",
			},
			[]string{"cache"},
		),
		cacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses by cache name",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(
		m.consumptionRunsTotal,
		m.consumptionDuration,
		m.predictorRefreshesTotal,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
	)

	return m
}

// RecordConsumptionRun counts one finished run by outcome branch
func (m *Metrics) RecordConsumptionRun(outcome string) {
	m.consumptionRunsTotal.WithLabelValues(outcome).Inc()
}

// ConsumptionTimer times one consumption run
func (m *Metrics) ConsumptionTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.consumptionDuration)
}

// RecordPredictorRefresh counts one recommendation computation
func (m *Metrics) RecordPredictorRefresh() {
	m.predictorRefreshesTotal.Inc()
}

// RecordCacheHit counts one cache hit
func (m *Metrics) RecordCacheHit(cache string) {
	m.cacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss counts one cache miss
func (m *Metrics) RecordCacheMiss(cache string) {
	m.cacheMissesTotal.WithLabelValues(cache).Inc()
}

// Handler exposes the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

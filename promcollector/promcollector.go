// Package promcollector exports enriched metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := promcollector.New(reg)
//	s, _ := enriched.Open(ctx, src, cfg, enriched.WithMetricsCollector(mc))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package promcollector

import (
	"time"

	"github.com/hupe1980/enriched"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements enriched.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	loaded    *prometheus.CounterVec
	results   *prometheus.HistogramVec
	ops       *prometheus.CounterVec
}

var _ enriched.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg registers with the default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enriched_operation_latency_seconds",
			Help:    "Latency of table loads and enrichment runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		loaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enriched_loaded_records_total",
			Help: "Records added to datasets, by table",
		}, []string{"table"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enriched_test_results",
			Help:    "Number of results reported per enrichment run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}, []string{"test"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enriched_operations_total",
			Help: "Completed operations",
		}, []string{"op", "status"}),
	}

	reg.MustRegister(c.opLatency, c.loaded, c.results, c.ops)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordLoad implements enriched.MetricsCollector.
func (c *Collector) RecordLoad(table string, records int, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues("load", s).Observe(d.Seconds())
	c.ops.WithLabelValues("load", s).Inc()
	if err == nil {
		c.loaded.WithLabelValues(table).Add(float64(records))
	}
}

// RecordTest implements enriched.MetricsCollector.
func (c *Collector) RecordTest(test string, results int, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues("test", s).Observe(d.Seconds())
	c.ops.WithLabelValues("test", s).Inc()
	if err == nil {
		c.results.WithLabelValues(test).Observe(float64(results))
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry plumbing.
type Metrics struct {
	registry       *prometheus.Registry
	upstreamFetch  *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	aggregations   *prometheus.CounterVec
	reportDuration prometheus.Histogram
	exports        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockconsole",
			Name:      "upstream_requests_total",
			Help:      "Requests made to the inventory API by resource and outcome.",
		}, []string{"resource", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stockconsole",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of inventory API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockconsole",
			Name:      "report_aggregations_total",
			Help:      "Warehouse report aggregations by result.",
		}, []string{"result"}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stockconsole",
			Name:      "report_aggregation_duration_seconds",
			Help:      "Time spent aggregating a warehouse report.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockconsole",
			Name:      "report_exports_total",
			Help:      "CSV exports by destination and outcome.",
		}, []string{"destination", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamFetch, m.fetchDuration, m.aggregations, m.reportDuration, m.exports,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUpstream(resource, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamFetch.WithLabelValues(resource, outcome).Inc()
	m.fetchDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAggregation(found bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "report"
	if !found {
		result = "no_warehouse"
	}
	m.aggregations.WithLabelValues(result).Inc()
	m.reportDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveExport(destination string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.exports.WithLabelValues(destination, outcome).Inc()
}

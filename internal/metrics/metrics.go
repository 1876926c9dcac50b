// Package metrics exposes Prometheus collectors for the assessment path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	scores      prometheus.Histogram
	cache       *prometheus.CounterVec
	rejected    prometheus.Counter
}

// New registers collectors on a fresh registry, so tests and multiple
// servers in one process do not collide on the global one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskatlas",
			Name:      "assessments_total",
			Help:      "Risk assessments served, by tier.",
		}, []string{"tier"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riskatlas",
			Name:      "final_risk_score",
			Help:      "Distribution of final risk scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskatlas",
			Name:      "score_cache_lookups_total",
			Help:      "Score cache lookups, by result.",
		}, []string{"result"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riskatlas",
			Name:      "invalid_requests_total",
			Help:      "Scoring requests rejected as invalid input.",
		}),
	}
	reg.MustRegister(m.assessments, m.scores, m.cache, m.rejected,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// ObserveScore records one scored request. Safe on a nil receiver.
func (m *Metrics) ObserveScore(tier string, score int, cacheHit bool) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(tier).Inc()
	m.scores.Observe(float64(score))
	if cacheHit {
		m.cache.WithLabelValues("hit").Inc()
	} else {
		m.cache.WithLabelValues("miss").Inc()
	}
}

// ObserveRejected counts a request refused as invalid input.
func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

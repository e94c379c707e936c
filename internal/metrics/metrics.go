// Package metrics holds the Prometheus collectors of the inflexion
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cours-de-latin/inflexion"
)

// Render outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeCompileError = "compile_error"
	OutcomeExecError    = "exec_error"
)

// Metrics owns a private registry so tests can build as many as they
// like.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	renders  *prometheus.CounterVec
	reloads  *prometheus.CounterVec
	entries  *prometheus.GaugeVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inflexion",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inflexion",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"route"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inflexion",
			Name:      "renders_total",
			Help:      "Template renders by outcome.",
		}, []string{"outcome"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inflexion",
			Name:      "data_reloads_total",
			Help:      "Noun data reloads by result.",
		}, []string{"result"}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "inflexion",
			Name:      "noun_entries",
			Help:      "Entries in the noun database by tier and kind.",
		}, []string{"tier", "kind"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.renders, m.reloads, m.entries,
	)
	return m
}

// Registry exposes the registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument counts and times every request h serves under route.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRender records one template render.
func (m *Metrics) ObserveRender(outcome string) {
	m.renders.WithLabelValues(outcome).Inc()
}

// ObserveReload records a data reload attempt.
func (m *Metrics) ObserveReload(err error) {
	if err != nil {
		m.reloads.WithLabelValues("error").Inc()
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
}

// ObserveStats sets the database size gauges.
func (m *Metrics) ObserveStats(st inflexion.Stats) {
	m.entries.WithLabelValues("user", "irregular").Set(float64(st.UserIrregulars))
	m.entries.WithLabelValues("user", "rule").Set(float64(st.UserRules))
	m.entries.WithLabelValues("predefined", "irregular").Set(float64(st.Irregulars))
	m.entries.WithLabelValues("predefined", "rule").Set(float64(st.Rules))
	m.entries.WithLabelValues("predefined", "preposition").Set(float64(st.Prepositions))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

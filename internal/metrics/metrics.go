// Package metrics exposes Prometheus collectors for the HTTP surface
// and the SQLite connection pool.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registered collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	statementsTotal  prometheus.Counter
	entriesSynced    prometheus.Counter
	entriesSkipFails prometheus.Counter
}

// New builds a registry with all application collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drefacil_http_requests_total",
			Help: "HTTP requests served, by method, path and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "drefacil_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		statementsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drefacil_statements_computed_total",
			Help: "Income statements computed across all endpoints.",
		}),
		entriesSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drefacil_entries_synced_total",
			Help: "Ledger entries successfully written to the backup sheet.",
		}),
		entriesSkipFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drefacil_sync_failures_total",
			Help: "Sync attempts that ended in an error.",
		}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.statementsTotal,
		m.entriesSynced,
		m.entriesSkipFails,
	)
	return m
}

// RegisterDB adds connection-pool gauges backed by db.Stats().
func (m *Metrics) RegisterDB(db *sql.DB) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "drefacil_db_open_connections",
			Help: "Open connections in the SQLite pool.",
		}, func() float64 { return float64(db.Stats().OpenConnections) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "drefacil_db_in_use_connections",
			Help: "Connections currently executing queries.",
		}, func() float64 { return float64(db.Stats().InUse) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "drefacil_db_wait_count",
			Help: "Total times a query waited for a connection.",
		}, func() float64 { return float64(db.Stats().WaitCount) }),
	)
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := r.URL.Path
		m.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// StatementComputed bumps the statement counter. Called once per computed
// period, including each period of a historical series.
func (m *Metrics) StatementComputed() { m.statementsTotal.Inc() }

// EntrySynced bumps the successful-sync counter.
func (m *Metrics) EntrySynced() { m.entriesSynced.Inc() }

// SyncFailed bumps the failed-sync counter.
func (m *Metrics) SyncFailed() { m.entriesSkipFails.Inc() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

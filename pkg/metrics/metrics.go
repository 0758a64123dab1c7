// Package metrics defines the Prometheus collectors for the service:
// HTTP request counters/latency, database query timing and pool gauges,
// and booking business counters.
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector registered by the service.
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbPoolOpen        *prometheus.GaugeVec
	dbPoolInUse       *prometheus.GaugeVec
	dbPoolIdle        *prometheus.GaugeVec
	dbPoolWaitedTotal *prometheus.CounterVec

	bookingsCreated    *prometheus.CounterVec
	bookingConflicts   *prometheus.CounterVec
	reconcileRuns      *prometheus.CounterVec
	reconcileCancelled *prometheus.CounterVec
}

// New registers all collectors on the default registry.
func New(service string) *Metrics {
	return &Metrics{
		service: service,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbPoolOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Open connections in the pool",
		}, []string{"service"}),

		dbPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Connections currently in use",
		}, []string{"service"}),

		dbPoolIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Idle connections in the pool",
		}, []string{"service"}),

		dbPoolWaitedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_pool_wait_count_total",
			Help: "Total number of connection waits",
		}, []string{"service"}),

		bookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Appointments successfully booked",
		}, []string{"service"}),

		bookingConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts lost to a concurrent booking",
		}, []string{"service"}),

		reconcileRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_reconcile_runs_total",
			Help: "Reconciliation sweeps executed",
		}, []string{"service"}),

		reconcileCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_reconcile_cancelled_total",
			Help: "Appointments cancelled after external calendar deletion",
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest records one handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery records one database query.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats exports a snapshot of the connection pool.
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpen.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.dbPoolInUse.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.dbPoolIdle.WithLabelValues(m.service).Set(float64(stats.Idle))
	m.dbPoolWaitedTotal.WithLabelValues(m.service).Add(0) // keep series alive
}

// IncBookingCreated counts a successful booking.
func (m *Metrics) IncBookingCreated() {
	m.bookingsCreated.WithLabelValues(m.service).Inc()
}

// IncBookingConflict counts a lost booking race.
func (m *Metrics) IncBookingConflict() {
	m.bookingConflicts.WithLabelValues(m.service).Inc()
}

// ObserveReconcile counts one sweep and the appointments it cancelled.
func (m *Metrics) ObserveReconcile(cancelled int) {
	m.reconcileRuns.WithLabelValues(m.service).Inc()
	if cancelled > 0 {
		m.reconcileCancelled.WithLabelValues(m.service).Add(float64(cancelled))
	}
}

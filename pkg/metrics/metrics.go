package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Conflict sources
const (
	ConflictSourcePrecheck   = "precheck"
	ConflictSourceConstraint = "constraint"
)

// Metrics коллекторы сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаём nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec
	dbQueryDuration   *prometheus.HistogramVec

	bookingsCreated   prometheus.Counter
	bookingConflicts  *prometheus.CounterVec
	bookingsCancelled prometheus.Counter
}

// New регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в переданном registerer
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings admitted",
			ConstLabels: constLabels,
		}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot is taken",
			ConstLabels: constLabels,
		}, []string{"source"}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Bookings cancelled",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.dbQueryDuration,
		m.bookingsCreated,
		m.bookingConflicts,
		m.bookingsCancelled,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) SetDBStats(db string, open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(db).Set(float64(open))
	m.dbInUse.WithLabelValues(db).Set(float64(inUse))
	m.dbIdle.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// IncBookingConflict source: ConflictSourcePrecheck | ConflictSourceConstraint
func (m *Metrics) IncBookingConflict(source string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(source).Inc()
}

func (m *Metrics) IncBookingCancelled() {
	if m == nil {
		return
	}
	m.bookingsCancelled.Inc()
}

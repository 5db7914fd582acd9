package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Property metrics
	PropertyOperationsCounter *prometheus.CounterVec
	ValidationFailuresCounter *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),
		PropertyOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_operations_total",
				Help: "Total number of property operations",
			},
			[]string{"operation"},
		),
		ValidationFailuresCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_validation_failures_total",
				Help: "Total number of rejected property writes by field",
			},
			[]string{"field"},
		),
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordPropertyOperation increments the counter for property operations
func (m *Metrics) RecordPropertyOperation(operation string) {
	if m == nil {
		return
	}
	m.PropertyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordValidationFailure increments the rejected-field counter
func (m *Metrics) RecordValidationFailure(field string) {
	if m == nil {
		return
	}
	m.ValidationFailuresCounter.WithLabelValues(field).Inc()
}

// Middleware records request count and latency per route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
			m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

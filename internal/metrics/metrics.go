// Package metrics provides Prometheus metrics collection for the costing service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// WizardStepsTotal tracks wizard steps by action and outcome.
	WizardStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costing_wizard_steps_total",
			Help: "Total number of costing wizard steps",
		},
		[]string{"action", "result"},
	)

	// CostCalculationsTotal tracks final cost aggregations by outcome.
	CostCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cost_calculations_total",
			Help: "Total number of cost aggregations",
		},
		[]string{"status"},
	)

	// CostCalculationDuration tracks cost aggregation duration.
	CostCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cost_calculation_duration_seconds",
			Help:    "Cost aggregation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// SessionOperationsTotal tracks session store operations.
	SessionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costing_session_operations_total",
			Help: "Total number of session store operations",
		},
		[]string{"operation", "result"},
	)

	// OpenSessions tracks the number of currently open costing sessions.
	OpenSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "costing_open_sessions",
			Help: "Number of currently open costing sessions",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordWizardStep records metrics for one wizard step.
func RecordWizardStep(action, result string) {
	WizardStepsTotal.WithLabelValues(action, result).Inc()
}

// RecordCostCalculation records metrics for a final cost aggregation.
func RecordCostCalculation(duration time.Duration, status string) {
	CostCalculationDuration.Observe(duration.Seconds())
	CostCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordSessionOperation records metrics for a session store operation.
func RecordSessionOperation(operation, result string) {
	SessionOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SetOpenSessions updates the open session gauge.
func SetOpenSessions(count int) {
	OpenSessions.Set(float64(count))
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders persisted, by resulting status",
		},
		[]string{"status"},
	)

	ordersCanceledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_canceled_total",
			Help: "Total number of orders moved to Canceled",
		},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation", "status"},
	)

	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking results returned by partner adapters",
		},
		[]string{"system", "result"},
	)

	partnerCancellationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partner_cancellations_failed_total",
			Help: "Cancel-booking calls that failed for a partner system",
		},
		[]string{"system"},
	)

	catalogImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_imports_total",
			Help: "Products processed by catalog import",
		},
		[]string{"system", "result"},
	)
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordOrderCreated(status string) {
	ordersCreatedTotal.WithLabelValues(status).Inc()
}

func RecordOrderCanceled() {
	ordersCanceledTotal.Inc()
}

// RecordOrderOperation records the outcome of an order endpoint call.
func RecordOrderOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	orderOperations.WithLabelValues(operation, status).Inc()
}

func RecordBooking(system string, success bool) {
	result := "success"
	if !success {
		result = "failed"
	}
	bookingsTotal.WithLabelValues(system, result).Inc()
}

func RecordPartnerCancellationFailed(system string) {
	partnerCancellationsFailed.WithLabelValues(system).Inc()
}

// RecordCatalogImport result is one of imported, skipped, failed.
func RecordCatalogImport(system, result string) {
	catalogImportsTotal.WithLabelValues(system, result).Inc()
}

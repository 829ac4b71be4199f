package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoicer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	invoicesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicer_invoices_generated_total",
			Help: "Invoices generated, by persistence outcome",
		},
		[]string{"outcome"},
	)
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicer_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"success"},
	)
)

// Invoice persistence outcomes.
const (
	InvoicePersisted     = "persisted"
	InvoicePersistFailed = "persist_failed"
	InvoiceNotPersisted  = "not_persisted"
)

// PrometheusMiddleware records request duration per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}
}

// RecordInvoiceGenerated counts a generated invoice by persistence outcome.
func RecordInvoiceGenerated(outcome string) {
	invoicesGenerated.WithLabelValues(outcome).Inc()
}

// RecordLoginAttempt counts a login attempt.
func RecordLoginAttempt(success bool) {
	loginAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedPath = "unmatched"

// Checkout outcomes recorded in checkout_attempts_total.
const (
	OutcomeStarted   = "started"
	OutcomeCancelled = "cancelled"
	OutcomeFinalized = "finalized"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	checkoutAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Payment attempts by outcome.",
		},
		[]string{"outcome"},
	)

	checkoutTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_transitions_total",
			Help: "Checkout state changes by target state.",
		},
		[]string{"state"},
	)

	checkoutBlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_blocked_total",
			Help: "Checkout requests refused because the cart was empty or over quota.",
		},
	)

	receiptsPrintedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "receipts_printed_total",
			Help: "Receipts handed to every configured printer.",
		},
	)

	receiptOutputFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "receipt_output_failures_total",
			Help: "Finalize requests that failed because a printer was unavailable.",
		},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Access code logins by result.",
		},
		[]string{"result"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func ObserveCheckout(outcome string) {
	checkoutAttemptsTotal.WithLabelValues(outcome).Inc()
}

func ObserveTransition(to models.CheckoutState) {
	checkoutTransitionsTotal.WithLabelValues(to.String()).Inc()
}

func CheckoutBlocked() {
	checkoutBlockedTotal.Inc()
}

func ReceiptPrinted() {
	receiptsPrintedTotal.Inc()
}

func ReceiptOutputFailed() {
	receiptOutputFailuresTotal.Inc()
}

func ObserveLogin(result string) {
	loginAttemptsTotal.WithLabelValues(result).Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware must wrap the ServeMux directly: the mux records the matched
// pattern on the request it receives, which becomes the path label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			pathPattern := r.Pattern
			if pathPattern == "" {
				pathPattern = unmatchedPath
			}

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}

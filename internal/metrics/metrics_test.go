package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/metrics"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

	metricLoop:
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metricLoop
				}
			}

			return m.GetCounter().GetValue()
		}
	}

	return 0
}

func TestMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := metrics.Middleware(mux)

	t.Run("Success - Labels By Route Pattern", func(t *testing.T) {
		labels := map[string]string{"code": "418", "method": "GET", "path": "GET /api/v1/products/{id}"}
		before := counterValue(t, "http_requests_total", labels)

		for _, id := range []string{"rice", "gas"} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
			assert.Equal(t, http.StatusTeapot, rec.Code)
		}

		assert.Equal(t, before+2, counterValue(t, "http_requests_total", labels))
	})

	t.Run("Success - Unmatched Paths Share A Label", func(t *testing.T) {
		labels := map[string]string{"code": "404", "method": "GET", "path": "unmatched"}
		before := counterValue(t, "http_requests_total", labels)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere/123", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, before+1, counterValue(t, "http_requests_total", labels))
	})
}

func TestDomainCounters(t *testing.T) {
	blocked := counterValue(t, "checkout_blocked_total", nil)
	metrics.CheckoutBlocked()
	assert.Equal(t, blocked+1, counterValue(t, "checkout_blocked_total", nil))

	started := counterValue(t, "checkout_attempts_total", map[string]string{"outcome": metrics.OutcomeStarted})
	metrics.ObserveCheckout(metrics.OutcomeStarted)
	assert.Equal(t, started+1, counterValue(t, "checkout_attempts_total", map[string]string{"outcome": metrics.OutcomeStarted}))

	receipt := counterValue(t, "checkout_transitions_total", map[string]string{"state": "receipt"})
	metrics.ObserveTransition(models.CheckoutStateReceipt)
	assert.Equal(t, receipt+1, counterValue(t, "checkout_transitions_total", map[string]string{"state": "receipt"}))
}

func TestHandler(t *testing.T) {
	metrics.ReceiptPrinted()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "receipts_printed_total")
}

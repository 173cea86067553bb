package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	metrics := NewMetrics()
	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", rec.Code)
	}

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRec, metricsReq)
	body := metricsRec.Body.String()
	if !strings.Contains(body, "branchbuddy_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestObserveLogin(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveLogin("failure")
	metrics.ObserveLogin("failure")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `branchbuddy_login_attempts_total{outcome="failure"} 2`) {
		t.Fatalf("expected login attempt counter at 2")
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveLogin("success")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	if handler := metrics.Middleware(next); handler == nil {
		t.Fatalf("expected passthrough handler")
	}
}

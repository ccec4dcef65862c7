package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbridge/internal/logging"
)

// testLogger discards everything.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMetrics_Exposition(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	m.DecrementActiveRequests()
	m.ObserveRequest("GET /fib", http.StatusBadRequest, 3*time.Millisecond)
	m.ObserveCalculation("words", "timeout")
	m.ObserveNativeCall("plus100", "error")
	m.ObserveNativeCall("no/such/function", "error")

	body := scrape(t, m)
	for _, want := range []string{
		"fibbridge_active_requests 1",
		`fibbridge_requests_total{code="200",route="/metrics"} 0`,
		`fibbridge_requests_total{code="400",route="GET /fib"} 1`,
		`fibbridge_request_duration_seconds_count{route="GET /fib"} 1`,
		`fibbridge_calculations_total{backend="words",outcome="timeout"} 1`,
		`fibbridge_native_calls_total{function="plus100",outcome="error"} 1`,
		`fibbridge_native_calls_total{function="unknown",outcome="error"} 1`,
		"go_goroutines",
		"process_",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestMetrics_InstancesAreIndependent(t *testing.T) {
	t.Parallel()
	a, b := NewMetrics(), NewMetrics()
	a.ObserveNativeCall("fibonacci", "ok")
	if strings.Contains(scrape(t, b), `function="fibonacci"`) {
		t.Error("observations leaked between registries")
	}
}

func TestServer_metricsMiddleware(t *testing.T) {
	t.Parallel()
	s := &Server{metrics: NewMetrics()}
	handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/nowhere", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	body := scrape(t, s.metrics)
	if !strings.Contains(body, `fibbridge_requests_total{code="404",route="unmatched"} 1`) {
		t.Errorf("request not recorded:\n%s", body)
	}
	if !strings.Contains(body, "fibbridge_active_requests 0") {
		t.Error("active request gauge should return to 0")
	}
}

func TestServer_handleMetrics(t *testing.T) {
	t.Parallel()
	s := &Server{metrics: NewMetrics(), logger: newTestLogger()}
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		rec := httptest.NewRecorder()
		s.handleMetrics(rec, httptest.NewRequest(method, "/metrics", http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodGet {
			t.Errorf("%s /metrics = %d, Allow %q", method, rec.Code, rec.Header().Get("Allow"))
		}
	}

	rec := httptest.NewRecorder()
	s.handleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "fibbridge_") {
		t.Errorf("GET /metrics = %d", rec.Code)
	}
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/users", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/users", 200, 7*time.Millisecond)
	m.ObserveRequest("POST", "/api/users", 201, 12*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/users", "200"))
	if got != 2 {
		t.Fatalf("expected 2 GET requests counted, got %v", got)
	}
	got = testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/users", "201"))
	if got != 1 {
		t.Fatalf("expected 1 POST request counted, got %v", got)
	}
}

func TestObserveRequestNormalizesEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("", "", 404, time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("unknown", "unknown", "404"))
	if got != 1 {
		t.Fatalf("expected empty labels mapped to unknown, got %v", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/api/hello", 200, time.Millisecond)

	m = NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/api/hello", 200, time.Millisecond)
}

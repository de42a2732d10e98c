package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	m := NewManager()

	m.ObserveOperation("search", OutcomeSuccess, 10*time.Millisecond)
	m.ObserveOperation("search", OutcomeSuccess, 20*time.Millisecond)
	m.ObserveOperation("search", "NotFound", 5*time.Millisecond)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("search", OutcomeSuccess)); got != 2 {
		t.Fatalf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("search", "NotFound")); got != 1 {
		t.Fatalf("not found count = %v, want 1", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := NewManager()

	m.ObserveRequest(200, time.Millisecond)
	m.ObserveRequest(404, time.Millisecond)
	m.ObserveRequest(0, time.Millisecond)

	for _, class := range []string{"2xx", "4xx", "error"} {
		if got := testutil.ToFloat64(m.requests.WithLabelValues(class)); got != 1 {
			t.Fatalf("requests{status=%q} = %v, want 1", class, got)
		}
	}
}

func TestDisabledAndNilManager(t *testing.T) {
	m := NewManager(WithMetricsEnabled(false))
	m.ObserveOperation("level", OutcomeSuccess, time.Millisecond)
	if got := testutil.ToFloat64(m.operations.WithLabelValues("level", OutcomeSuccess)); got != 0 {
		t.Fatalf("disabled manager recorded %v operations", got)
	}

	var nilManager *Manager
	nilManager.ObserveOperation("level", OutcomeSuccess, time.Millisecond)
	nilManager.ObserveRequest(200, time.Millisecond)
	if nilManager.Enabled() {
		t.Fatal("nil manager must report disabled")
	}
}

func TestCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("sub"))
	m.ObserveRequest(500, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "test_sub_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 series, got %d", count)
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{
		0:   "error",
		200: "2xx",
		204: "2xx",
		401: "4xx",
		503: "5xx",
		700: "error",
	}
	for code, want := range cases {
		if got := StatusClass(code); got != want {
			t.Errorf("StatusClass(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestConfigOptions(t *testing.T) {
	m := NewManager(Config{Enabled: true, Namespace: "ns"}.Options()...)
	if !m.Enabled() {
		t.Fatal("expected enabled manager")
	}
	if m.namespace != "ns" || m.subsystem != "client" {
		t.Fatalf("unexpected names %q/%q", m.namespace, m.subsystem)
	}
}

func TestConfigBuckets(t *testing.T) {
	m := NewManager(Config{Enabled: true, Buckets: []float64{0.1, 1}}.Options()...)
	m.ObserveRequest(200, 50*time.Millisecond)

	families, err := m.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "strikers_client_request_duration_seconds" {
			continue
		}
		if got := len(mf.GetMetric()[0].GetHistogram().GetBucket()); got != 2 {
			t.Fatalf("buckets = %d, want 2", got)
		}
		return
	}
	t.Fatal("request duration histogram not gathered")
}

func TestGatherer(t *testing.T) {
	m := NewManager()
	m.ObserveOperation("level", OutcomeSuccess, time.Millisecond)

	count, err := testutil.GatherAndCount(m.Gatherer(), "strikers_client_operations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 series, got %d", count)
	}

	reg := prometheus.NewRegistry()
	if got := NewManager(WithPrometheusRegistry(reg)).Gatherer(); got != prometheus.Gatherer(reg) {
		t.Fatal("expected the supplied registry to be the gatherer")
	}

	var nilManager *Manager
	if nilManager.Gatherer() != nil {
		t.Fatal("nil manager must have no gatherer")
	}
}

package goGate

import (
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricRedirectIssued)
	m.Observe(MetricEvaluateLatency, time.Millisecond)

	if m.Value(MetricRedirectIssued) != 0 {
		t.Fatal("disabled metrics must not count")
	}

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("disabled snapshot must be empty, got %+v", snap)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.Inc(MetricRedirectIssued)
	m.Observe(MetricEvaluateLatency, time.Millisecond)

	if m.Value(MetricRedirectIssued) != 0 {
		t.Fatal("nil metrics must read zero")
	}
	if m.Enabled() || m.LatencyEnabled() {
		t.Fatal("nil metrics must report disabled")
	}
}

func TestMetricsCountersAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricEvaluateAuthenticated)
	m.Inc(MetricEvaluateAuthenticated)
	m.Inc(MetricCredentialCleared)

	if got := m.Value(MetricEvaluateAuthenticated); got != 2 {
		t.Fatalf("got %d want 2", got)
	}

	snap := m.Snapshot()
	if snap.Counters[MetricEvaluateAuthenticated] != 2 {
		t.Fatalf("snapshot mismatch: %+v", snap.Counters)
	}
	if snap.Counters[MetricCredentialCleared] != 1 {
		t.Fatalf("snapshot mismatch: %+v", snap.Counters)
	}

	// Snapshot is a copy; later increments must not leak into it.
	m.Inc(MetricCredentialCleared)
	if snap.Counters[MetricCredentialCleared] != 1 {
		t.Fatal("snapshot must be a deep copy")
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricEvaluateLatency, 10*time.Microsecond)
	m.Observe(MetricEvaluateLatency, 200*time.Microsecond)
	m.Observe(MetricEvaluateLatency, time.Second)

	snap := m.Snapshot()
	buckets, ok := snap.Histograms[MetricEvaluateLatency]
	if !ok {
		t.Fatal("expected latency histogram in snapshot")
	}

	var total uint64
	for _, b := range buckets {
		total += b
	}
	if total != 3 {
		t.Fatalf("expected 3 samples, got %d (%v)", total, buckets)
	}
	if buckets[0] != 1 || buckets[2] != 1 || buckets[7] != 1 {
		t.Fatalf("unexpected bucket layout: %v", buckets)
	}
}

func TestMetricsObserveIgnoresCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricRedirectIssued, time.Millisecond)

	snap := m.Snapshot()
	if buckets := snap.Histograms[MetricEvaluateLatency]; buckets != nil {
		for _, b := range buckets {
			if b != 0 {
				t.Fatalf("counter ids must not record latency: %v", buckets)
			}
		}
	}
}

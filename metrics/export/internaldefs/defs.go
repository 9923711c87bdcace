package internaldefs

import (
	goGate "github.com/MrEthical07/goGate"
)

// CounterDef pairs a core counter ID with its stable exported name.
type CounterDef struct {
	ID   goGate.MetricID
	Name string
	Help string
}

// HistogramDef pairs a core histogram ID with its stable exported name.
type HistogramDef struct {
	ID   goGate.MetricID
	Name string
	Help string
}

// CounterDefs lists every counter the gate engine maintains.
var CounterDefs = []CounterDef{
	{ID: goGate.MetricEvaluateAuthenticated, Name: "gogate_evaluate_authenticated_total", Help: "Evaluations that settled authenticated."},
	{ID: goGate.MetricEvaluateMissing, Name: "gogate_evaluate_missing_total", Help: "Evaluations that found no stored credential."},
	{ID: goGate.MetricEvaluateMalformed, Name: "gogate_evaluate_malformed_total", Help: "Evaluations that rejected a malformed credential."},
	{ID: goGate.MetricEvaluateExpired, Name: "gogate_evaluate_expired_total", Help: "Evaluations that rejected an expired credential."},
	{ID: goGate.MetricCredentialCleared, Name: "gogate_credential_cleared_total", Help: "Invalid credentials removed from the store."},
	{ID: goGate.MetricRedirectIssued, Name: "gogate_redirect_issued_total", Help: "Login redirects issued."},
	{ID: goGate.MetricMountSuppressed, Name: "gogate_mount_suppressed_total", Help: "Checks whose effects were suppressed by mount teardown."},
}

// HistogramDefs lists every latency histogram the gate engine maintains.
var HistogramDefs = []HistogramDef{
	{ID: goGate.MetricEvaluateLatency, Name: "gogate_evaluate_latency_seconds", Help: "Evaluate latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, matching the
// microsecond buckets recorded by the core histogram.
var HistogramBounds = []string{
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"0.001",
	"0.0025",
	"0.005",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in
// OTel instrument names.
var HistogramBoundSuffix = []string{
	"0_00005",
	"0_0001",
	"0_00025",
	"0_0005",
	"0_001",
	"0_0025",
	"0_005",
	"inf",
}

// NormalizeBuckets widens a snapshot bucket slice to the fixed 8-bucket
// layout, tolerating short or missing slices.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative counts
// the Prometheus exposition format requires.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

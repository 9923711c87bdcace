package goGate

import (
	"context"

	"github.com/google/uuid"

	internalaudit "github.com/MrEthical07/goGate/internal/audit"
	"github.com/MrEthical07/goGate/token"
)

// Guard is the session gate engine. It is immutable after [Builder.Build]
// and safe for concurrent use by any number of mounts.
type Guard struct {
	config    Config
	store     Store
	navigator Navigator
	clock     Clock
	metrics   *Metrics
	audit     *internalaudit.Dispatcher
}

// decision is the pure outcome of the check, computed before any side
// effect fires. Separating decision from effects is what makes mount
// cancellation able to suppress effects cleanly.
type decision struct {
	state       GuardState
	payload     *token.Payload
	reason      error
	clearNeeded bool
	detail      string
}

// Evaluate runs one synchronous pass of the gate's transition table:
// read the credential, decode it, judge expiry, then clear-and-redirect on
// any failure. Exactly one redirect fires per failing evaluation and the
// clear always precedes it.
func (g *Guard) Evaluate(ctx context.Context) Result {
	if g == nil {
		return Result{State: StateUnauthenticated, Reason: ErrGuardNotReady}
	}
	res, _ := g.evaluate(ctx, g.store, g.navigator, uuid.NewString(), nil)
	return res
}

// EvaluateWith runs one pass against request-scoped collaborators while
// sharing the guard's config, metrics, and audit pipeline. HTTP adapters use
// this to bind the credential store and redirect sink to a single request.
func (g *Guard) EvaluateWith(ctx context.Context, store Store, navigator Navigator) Result {
	if g == nil || store == nil || navigator == nil {
		return Result{State: StateUnauthenticated, Reason: ErrGuardNotReady}
	}
	res, _ := g.evaluate(ctx, store, navigator, uuid.NewString(), nil)
	return res
}

// evaluate decides first, then applies effects. When alive is non-nil it is
// consulted once, immediately before effects; a torn-down mount suppresses
// the clear, the redirect, and the state transition.
func (g *Guard) evaluate(ctx context.Context, store Store, navigator Navigator, mountID string, alive func() bool) (Result, bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := g.clock()
	d := g.decide(ctx, store)

	if alive != nil && !alive() {
		g.metrics.Inc(MetricMountSuppressed)
		g.emit(ctx, mountID, d, Result{State: StateLoading}, "guard.suppressed")
		return Result{State: StateLoading}, true
	}

	res := Result{
		State:   d.state,
		Payload: d.payload,
		Reason:  d.reason,
	}

	if d.clearNeeded {
		if err := store.Remove(ctx, g.config.Credential.StorageKey); err != nil {
			// Best effort: the redirect must still fire, the failure is
			// surfaced through audit.
			if d.detail == "" {
				d.detail = err.Error()
			}
		} else {
			res.Cleared = true
			g.metrics.Inc(MetricCredentialCleared)
		}
	}

	if d.state == StateUnauthenticated {
		navigator.Replace(g.config.Login.Path)
		res.Redirected = true
		g.metrics.Inc(MetricRedirectIssued)
	}

	switch {
	case d.state == StateAuthenticated:
		g.metrics.Inc(MetricEvaluateAuthenticated)
	case d.reason == ErrMissingCredential:
		g.metrics.Inc(MetricEvaluateMissing)
	case d.reason == ErrExpiredCredential:
		g.metrics.Inc(MetricEvaluateExpired)
	default:
		g.metrics.Inc(MetricEvaluateMalformed)
	}

	g.metrics.Observe(MetricEvaluateLatency, g.clock().Sub(start))
	g.emit(ctx, mountID, d, res, "guard.evaluate")

	return res, false
}

func (g *Guard) decide(ctx context.Context, store Store) decision {
	key := g.config.Credential.StorageKey

	raw, present, err := store.Get(ctx, key)
	if err != nil {
		// An unreadable store is indistinguishable from an absent
		// credential for a binary gate; the error rides along in audit.
		return decision{state: StateUnauthenticated, reason: ErrMissingCredential, detail: err.Error()}
	}
	if !present {
		return decision{state: StateUnauthenticated, reason: ErrMissingCredential}
	}

	payload, err := token.Decode(raw)
	if err != nil {
		return decision{state: StateUnauthenticated, reason: ErrMalformedCredential, clearNeeded: true, detail: err.Error()}
	}

	exp, hasExp := payload.ExpiresAt()
	if !hasExp {
		if g.config.Credential.RequireExpiry {
			return decision{state: StateUnauthenticated, reason: ErrMalformedCredential, clearNeeded: true, detail: "exp claim required"}
		}
		// Non-expiring credential.
		return decision{state: StateAuthenticated, payload: payload}
	}

	if exp.Add(g.config.Credential.Leeway).Before(g.clock()) {
		return decision{state: StateUnauthenticated, reason: ErrExpiredCredential, clearNeeded: true}
	}

	return decision{state: StateAuthenticated, payload: payload}
}

func (g *Guard) emit(ctx context.Context, mountID string, d decision, res Result, eventType string) {
	if g.audit == nil {
		return
	}

	reason := ""
	if d.reason != nil {
		reason = d.reason.Error()
	}

	g.audit.Emit(ctx, AuditEvent{
		Timestamp:  g.clock(),
		EventType:  eventType,
		MountID:    mountID,
		StorageKey: g.config.Credential.StorageKey,
		State:      res.State.String(),
		Reason:     reason,
		Cleared:    res.Cleared,
		Redirected: res.Redirected,
		Error:      d.detail,
	})
}

// MetricsSnapshot returns a point-in-time copy of the guard's counters and
// histograms.
func (g *Guard) MetricsSnapshot() MetricsSnapshot {
	if g == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return g.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under
// backpressure.
func (g *Guard) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// LoginPath returns the configured redirect destination.
func (g *Guard) LoginPath() string {
	return g.config.Login.Path
}

// StorageKey returns the configured credential store key.
func (g *Guard) StorageKey() string {
	return g.config.Credential.StorageKey
}

// Close drains and stops the audit dispatcher. The guard itself holds no
// other resources.
func (g *Guard) Close() {
	if g == nil {
		return
	}
	g.audit.Close()
}

package goGate

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Mount models one attachment of the gate to the render tree. It starts in
// [StateLoading], runs its check exactly once after [Mount.Start], and
// settles into [StateAuthenticated] or [StateUnauthenticated]. Closing the
// mount before the check completes suppresses the state transition, the
// store mutation, and the navigation call.
type Mount struct {
	guard  *Guard
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	state     atomic.Uint32
	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}

	mu     sync.Mutex
	result Result
}

// NewMount creates a mount in [StateLoading]. The check does not run until
// [Mount.Start]; construction maps to synchronous render, Start to the
// post-attach effect.
func (g *Guard) NewMount(ctx context.Context) *Mount {
	if ctx == nil {
		ctx = context.Background()
	}
	mctx, cancel := context.WithCancel(ctx)

	m := &Mount{
		guard:  g,
		id:     uuid.NewString(),
		ctx:    mctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.state.Store(uint32(StateLoading))

	return m
}

// ID is the mount's audit correlation identifier.
func (m *Mount) ID() string {
	return m.id
}

// Start schedules the one-shot check. Subsequent calls are no-ops: side
// effects fire at most once per mount, and re-renders never re-run the
// check.
func (m *Mount) Start() {
	m.startOnce.Do(func() {
		go m.run()
	})
}

func (m *Mount) run() {
	if m.guard == nil {
		return
	}

	res, suppressed := m.guard.evaluate(m.ctx, m.guard.store, m.guard.navigator, m.id, m.alive)
	if suppressed {
		return
	}

	m.mu.Lock()
	m.result = res
	m.mu.Unlock()

	m.state.Store(uint32(res.State))
	close(m.done)
}

func (m *Mount) alive() bool {
	select {
	case <-m.ctx.Done():
		return false
	default:
		return true
	}
}

// State returns the mount's current render state.
func (m *Mount) State() GuardState {
	return GuardState(m.state.Load())
}

// Wait blocks until the mount settles, the mount is closed, or ctx ends.
func (m *Mount) Wait(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// A settled mount answers immediately even after Close.
	select {
	case <-m.done:
		return m.settled(), nil
	default:
	}

	select {
	case <-m.done:
		return m.settled(), nil
	case <-m.ctx.Done():
		return Result{State: StateLoading}, ErrMountClosed
	case <-ctx.Done():
		return Result{State: StateLoading}, ctx.Err()
	}
}

func (m *Mount) settled() Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Close detaches the mount. A check that has not completed is cancelled and
// its effects suppressed; a settled result stays settled.
func (m *Mount) Close() {
	m.closeOnce.Do(m.cancel)
}

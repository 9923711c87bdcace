package goGate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/MrEthical07/goGate/internal/audit"
	"github.com/MrEthical07/goGate/token"
)

// GuardState is the render state of a single mount. It is transient,
// recomputed on every mount, and never persisted.
type GuardState uint8

const (
	// StateLoading is the initial state: no protected content, no redirect
	// attempted yet.
	StateLoading GuardState = iota
	// StateAuthenticated renders the protected subtree.
	StateAuthenticated
	// StateUnauthenticated renders nothing; the redirect side effect is
	// expected to tear the mount down shortly after.
	StateUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Store is the credential store collaborator: a persistent key-value
// surface shared between the guard and the external login flow. Get
// reports absence through its second return value, never through an error.
// Implementations live in the store subpackage; any backend whose
// get/set/remove operations are individually atomic qualifies.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Navigator is the redirect collaborator. Replace performs an imperative
// redirect that does not push a history entry.
type Navigator interface {
	Replace(path string)
}

// Result is the settled outcome of one guard evaluation.
type Result struct {
	// State is StateAuthenticated or StateUnauthenticated; Evaluate never
	// returns StateLoading.
	State GuardState
	// Payload is the decoded credential payload, non-nil only when State
	// is StateAuthenticated.
	Payload *token.Payload
	// Reason classifies an Unauthenticated outcome as one of
	// [ErrMissingCredential], [ErrMalformedCredential], or
	// [ErrExpiredCredential]. Nil when authenticated.
	Reason error
	// Cleared reports that the invalid credential was removed from the
	// store. Always false for a missing credential (nothing to clear).
	Cleared bool
	// Redirected reports that the navigator was sent to the login path.
	Redirected bool
}

// AuditEvent is the structured record emitted once per guard evaluation.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the guard's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// Clock abstracts the guard's time source so expiry decisions are testable.
type Clock func() time.Time

package goGate

import (
	"errors"
	"time"

	internalaudit "github.com/MrEthical07/goGate/internal/audit"
)

// Builder assembles a [Guard] from its collaborators. Construction is
// allocation-only; no collaborator is touched until the first evaluation.
type Builder struct {
	config    Config
	store     Store
	navigator Navigator
	clock     Clock
	auditSink AuditSink

	built bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore sets the credential store collaborator. Required.
func (b *Builder) WithStore(s Store) *Builder {
	b.store = s
	return b
}

// WithNavigator sets the redirect collaborator. Required.
func (b *Builder) WithNavigator(n Navigator) *Builder {
	b.navigator = n
	return b
}

// WithClock overrides the guard's time source. Defaults to time.Now.
func (b *Builder) WithClock(clock Clock) *Builder {
	b.clock = clock
	return b
}

// WithAuditSink sets the sink receiving one [AuditEvent] per evaluation.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics surface.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the evaluate latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the collaborators, and returns
// an immutable [Guard]. A builder can be used once.
func (b *Builder) Build() (*Guard, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if b.store == nil {
		return nil, errors.New("credential store required")
	}
	if b.navigator == nil {
		return nil, errors.New("navigator required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	g := &Guard{
		config:    b.config,
		store:     b.store,
		navigator: b.navigator,
		clock:     clock,
		metrics:   NewMetrics(b.config.Metrics),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink),
	}

	b.built = true

	return g, nil
}

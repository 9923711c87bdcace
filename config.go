package goGate

import (
	"errors"
	"strings"
	"time"
)

// Config carries all guard tuning. Instances are treated as immutable after
// [Builder.Build]; the builder copies them by value.
type Config struct {
	Credential CredentialConfig
	Login      LoginConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

// CredentialConfig controls how the persisted credential is located and
// judged.
type CredentialConfig struct {
	// StorageKey is the fixed store key holding the credential.
	StorageKey string
	// Leeway extends the expiry deadline to absorb client clock drift.
	// Bounded to [0, 2m].
	Leeway time.Duration
	// RequireExpiry rejects well-formed payloads that carry no exp claim.
	// Off by default: absence of an expiry claim is deliberate support for
	// long-lived credentials, not a failure.
	RequireExpiry bool
}

// LoginConfig names the destination for unauthenticated redirects.
type LoginConfig struct {
	Path string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics surface.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultStorageKey matches the key the login flow writes.
const DefaultStorageKey = "access_token"

// DefaultLoginPath is the destination for unauthenticated redirects.
const DefaultLoginPath = "/login"

// DefaultConfig returns the gate configuration used when the builder is
// given nothing else: credential under "access_token", redirects to
// "/login", audit and metrics enabled with a small drop-if-full buffer.
func DefaultConfig() Config {
	return Config{
		Credential: CredentialConfig{
			StorageKey: DefaultStorageKey,
		},
		Login: LoginConfig{
			Path: DefaultLoginPath,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations the guard cannot act on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Credential.StorageKey) == "" {
		return errors.New("credential storage key must not be blank")
	}
	if c.Credential.Leeway < 0 || c.Credential.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if !strings.HasPrefix(c.Login.Path, "/") {
		return errors.New("login path must be absolute")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}

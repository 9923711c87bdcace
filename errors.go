package goGate

import "errors"

var (
	// ErrMissingCredential reports that the store held no credential at the
	// configured storage key.
	ErrMissingCredential = errors.New("missing credential")
	// ErrMalformedCredential reports a credential with the wrong segment
	// count or an undecodable payload.
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrExpiredCredential reports a credential whose exp claim lies in the
	// past.
	ErrExpiredCredential = errors.New("expired credential")
	// ErrMountClosed reports an observation on a mount that was closed
	// before its check settled.
	ErrMountClosed = errors.New("mount closed")
	// ErrGuardNotReady reports use of a guard that was not built through
	// [Builder.Build].
	ErrGuardNotReady = errors.New("guard not initialized")
)

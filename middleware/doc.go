// Package middleware exposes an HTTP adapter for cookie-backed session
// gating built on top of goGate.Guard evaluation.
//
// # Guards
//
//   - [Protect] — evaluates the credential cookie, redirects on failure.
//
// The guard reads the credential cookie named by the engine's storage key,
// runs one evaluation, and either injects the decoded payload into the
// request context or answers with a 303 redirect to the login path. An
// invalid credential is expired from the client via Set-Cookie before the
// redirect is written.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Guard calls. It does NOT
// implement gating logic itself — all decisions are delegated to
// Guard.EvaluateWith.
//
// # What this package must NOT do
//
//   - Decode credentials directly (delegates to the guard).
//   - Judge expiry or leeway (the guard owns the transition table).
//   - Redirect for any reason beyond pass/reject from the evaluation.
package middleware

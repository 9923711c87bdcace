// Package goGate implements the client-side session gate for a dashboard's
// authenticated area. On every mount the guard reads a locally persisted
// credential, decodes its payload, and settles into exactly one of three
// states: Loading (transient placeholder), Authenticated (render protected
// content), or Unauthenticated (clear the credential, redirect to login).
//
// The Credential Store and the Navigator are injected collaborators wired
// through [Builder.Build]. goGate never mints credentials and never calls a
// login endpoint; refresh and issuance belong entirely to the login flow.
//
// # Architecture boundaries
//
// goGate is the public surface. It exposes [Guard], [Mount], [Builder],
// [Config], and value types (Result, MetricsSnapshot). Audit dispatching
// lives under internal/ and is reachable only through the exported sink
// aliases. The token subpackage holds the pure decoder; store holds the
// credential store backends; middleware adapts the guard to net/http.
//
// # Invariants
//
//   - Protected content is never rendered while a mount is Loading or
//     Unauthenticated.
//   - A credential judged invalid (malformed, expired) is removed from the
//     store before the redirect fires; no path leaves an invalid credential
//     behind.
//   - Side effects fire at most once per mount, and never on a mount that
//     was closed before its check completed.
//
// # Performance contract
//
// Evaluate is the hot path: one store read, one pure decode, at most one
// store removal and one navigation call. It performs no network I/O of its
// own and holds no locks across collaborator calls.
package goGate

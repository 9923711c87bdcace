// Package store provides credential store backends for the goGate guard.
//
// A credential store is a persistent key-value surface shared between the
// guard (read/clear) and the external login flow (write). Three backends
// are provided:
//
//   - [Memory]: mutex-guarded map, the test double and single-process choice.
//   - [Redis]: go-redis backed, namespaced per browsing context.
//   - [SQLite]: file-backed via modernc.org/sqlite, survives restarts.
//
// Every backend guarantees that Get, Set, and Remove are individually
// atomic; the guard requires nothing stronger because its reads and writes
// are bound to user-driven page transitions, never to parallel workers.
package store

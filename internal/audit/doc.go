// Package audit provides the asynchronous audit pipeline for guard
// decisions. Every mount evaluation emits exactly one Event describing the
// resulting state, whether the credential was cleared, and whether a
// redirect was issued.
//
// Events flow through a buffered Dispatcher into a caller-supplied Sink.
// The dispatcher never blocks the guard's hot path when configured with
// DropIfFull; dropped events are counted and exposed through the metrics
// surface.
package audit

// Package stopwatch implements a single stopwatch record and its state
// transitions.
//
// # Elapsed Time
//
// A record never counts time incrementally. It stores the time accumulated
// while paused plus, when running, the monotonic reading at which the
// current run began. Elapsed time is derived on demand:
//
//	elapsed = accumulated                     (paused)
//	elapsed = accumulated + (now - startedAt) (running)
//
// Redrawing many times per second therefore cannot drift or compound
// rounding error.
//
// # State Machine
//
// Records start Paused. Start and Pause are no-ops when already in the
// target state. Reset and SetTime keep the current state: a running record
// is re-anchored at the moment of the call and keeps running from the new
// base.
//
// # Identity
//
// Each record carries an opaque ID generated at creation. The default
// generator produces UUIDv7 strings.
package stopwatch

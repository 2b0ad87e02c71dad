// Package collection owns the set of stopwatches and is the single entry
// point for user actions.
//
// A Collection is constructed once per process. Front ends translate their
// input (key presses, HTTP requests, shell commands) into Message values and
// pass them to Dispatch, then draw the View handed to the Render hook. The
// collection wires together the pieces that make up the engine:
//
//   - stopwatch.Record for per-timer state and transitions
//   - runloop.Scheduler for the shared redraw loop
//   - confirm.Gate for reset and remove confirmation
//   - persistence.Store for best-effort durability
//
// Collection is not safe for concurrent use. Front ends with more than one
// goroutine serialize all calls through a runloop.Executor.
package collection

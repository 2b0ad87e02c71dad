// Package runloop drives periodic redraws for any number of stopwatches from
// a single shared frame callback.
//
// # Scheduler
//
// A Scheduler owns at most one outstanding frame request. After every
// mutation that may change run state the owner calls Sync, which starts the
// loop when at least one stopwatch is running and stops it when none is.
// Each frame renders every stopwatch and requests the next frame only if
// something is still running, so the loop winds down by itself one frame
// after the last stopwatch pauses.
//
// # Frame Sources
//
// Frames come from a FrameSource. QueuedFrames holds requests until the
// owner fires them, which lets tests and event-loop front ends (such as a
// terminal UI that receives ticks as messages) drive frames synchronously.
// TimerFrames fires requests after a fixed interval and hands each callback
// to an Executor so it runs serialized with the rest of the engine.
//
// # Threading
//
// Scheduler is not safe for concurrent use. All calls, including frame
// callbacks, must happen inside one execution domain; Serial provides one
// for front ends that receive input on several goroutines.
package runloop

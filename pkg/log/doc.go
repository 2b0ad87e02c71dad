// Package log provides the structured engine trace for multiwatch.
//
// The trace records what the stopwatch engine did: actions dispatched to the
// collection, confirmation prompts and their outcomes, persistence attempts,
// and run-loop start/stop transitions. It is separate from operational
// logging (slog) and off by default; it exists for debugging timing and
// persistence problems after the fact.
//
// # Basic Usage
//
//	// Console while developing
//	cfg.Trace = log.NewSlogAdapter(slog.Default())
//
//	// Binary file for later inspection with multiwatch-log
//	cfg.Trace, _ = log.NewFileLogger("/tmp/multiwatch.swlog")
//
//	// Both
//	cfg.Trace = log.NewMultiLogger(console, file)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded Events with integer keys
// (.swlog extension). Use Reader or the multiwatch-log command to read them.
package log

// Package persistence stores the stopwatch collection in durable key-value
// storage.
//
// The collection is saved as a single JSON array under a fixed key
// (DefaultKey), one object per record:
//
//	[{"id": "…", "name": "Lap 1", "timeMs": 123000}, …]
//
// timeMs is the elapsed time at the moment of saving, so a record that was
// running is restored paused with the time it had reached.
//
// Persistence is best effort. Save reports errors so callers can log them,
// but nothing in the engine depends on a save succeeding. Load never fails:
// a missing key, malformed JSON or a payload that is not an array all
// yield an empty Snapshot.
//
// Three KV backends are provided: MemoryKV, FileKV (one JSON file per key
// in the user data directory) and SQLiteKV.
package persistence

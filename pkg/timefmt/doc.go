// Package timefmt converts stopwatch durations to and from the HH:MM:SS
// text shown to users.
//
// # Formatting
//
// Durations are truncated to whole seconds and rendered zero-padded as
// HH:MM:SS. Hours never roll over, so 100 hours renders as "100:00:00".
// Negative input is clamped to zero.
//
// # Parsing
//
// User-typed durations accept one to three colon-separated groups of ASCII
// digits:
//
//	90        seconds
//	2:03      minutes:seconds
//	1:02:03   hours:minutes:seconds
//
// Groups are not range checked, so "0:90" is ninety seconds. Anything else
// (empty input, signs, decimals, a fourth group) fails with
// ErrInvalidDuration, which callers surface as an inline message rather than
// treat as fatal.
package timefmt

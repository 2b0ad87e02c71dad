// Package confirm implements the yes/no confirmation gate placed in front of
// destructive actions.
//
// A caller submits a Prompt together with a continuation. The continuation
// runs exactly once, with true if the user confirms and false if the user
// cancels, clicks outside the prompt or presses Escape. Nothing is ever
// returned as an error across the gate.
//
// # One Prompt at a Time
//
// At most one prompt is shown. Requests made while a prompt is open are
// queued in arrival order and shown one after another; no request is
// dropped or left unresolved.
//
// # Focus
//
// When a prompt is shown the gate remembers which element had focus and
// restores it after the prompt resolves.
package confirm

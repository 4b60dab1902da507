// Package engine owns the form state machine: the active form type, the
// draft being edited, validation errors, progress, the per-type record store
// and the edit cursor. Every public method runs to completion synchronously;
// the engine is not safe for concurrent use and callers serialise events the
// way a UI event loop would.
//
// Validation errors are only set by Submit. UpdateField clears the error of
// a required field as soon as it receives a non-empty value, but never adds
// one. Deleting a record in the active form type always drops the edit
// cursor so a later Submit appends instead of overwriting a shifted row.
package engine

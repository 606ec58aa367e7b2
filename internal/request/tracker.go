package request

import (
	"log/slog"

	"github.com/lepinkainen/bookdice/internal/book"
)

// Tracker owns a State and tags every started request with a sequence
// number. Completions and failures carrying an older tag are dropped, so a
// slow response can never overwrite the state of a newer request.
//
// Tracker is not safe for concurrent use; it is driven from the UI loop.
type Tracker struct {
	state State
	seq   uint64
}

// NewTracker returns a tracker in the initial state.
func NewTracker() *Tracker {
	return &Tracker{state: Initial()}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// Latest returns the tag of the most recent Start or Reset.
func (t *Tracker) Latest() uint64 {
	return t.seq
}

// Start moves to the fetching state and returns the tag for the new request.
func (t *Tracker) Start() uint64 {
	t.seq++
	t.state = Reduce(t.state, Start())
	return t.seq
}

// Reset returns to idle and invalidates any request still in flight.
func (t *Tracker) Reset() {
	t.seq++
	t.state = Reduce(t.state, Reset())
}

// Complete stores record if seq is the latest tag. It reports whether the
// completion was applied.
func (t *Tracker) Complete(seq uint64, record *book.Record) bool {
	return t.settle(seq, Complete(record))
}

// Fail marks the request failed if seq is the latest tag. It reports whether
// the failure was applied.
func (t *Tracker) Fail(seq uint64) bool {
	return t.settle(seq, Fail())
}

func (t *Tracker) settle(seq uint64, action Action) bool {
	if seq != t.seq {
		slog.Debug("Dropping stale book request result", "seq", seq, "latest", t.seq, "action", action.Kind.String())
		return false
	}
	t.state = Reduce(t.state, action)
	return true
}

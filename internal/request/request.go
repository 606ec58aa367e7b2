// Package request holds the book request lifecycle: a pure reducer over
// State and a Tracker that discards completions from superseded requests.
package request

import "github.com/lepinkainen/bookdice/internal/book"

// Kind identifies what an Action does to the request state.
type Kind int

const (
	// KindNone is the zero Kind; reducing it leaves the state unchanged.
	KindNone Kind = iota
	// KindReset returns to the initial idle state.
	KindReset
	// KindStart marks a request as in flight.
	KindStart
	// KindFail marks the current request as failed.
	KindFail
	// KindComplete stores the fetched book.
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindReset:
		return "reset"
	case KindStart:
		return "start"
	case KindFail:
		return "fail"
	case KindComplete:
		return "complete"
	default:
		return "none"
	}
}

// Action is dispatched to Reduce. Payload is only read for KindComplete.
type Action struct {
	Kind    Kind
	Payload *book.Record
}

// Reset builds a reset action.
func Reset() Action { return Action{Kind: KindReset} }

// Start builds a start action.
func Start() Action { return Action{Kind: KindStart} }

// Fail builds a fail action.
func Fail() Action { return Action{Kind: KindFail} }

// Complete builds a complete action carrying the fetched record.
func Complete(payload *book.Record) Action {
	return Action{Kind: KindComplete, Payload: payload}
}

// State is the view state of the book request.
// At most one of Fetching and Error is true.
type State struct {
	Fetching bool
	Error    bool
	Book     *book.Record
}

// Initial returns the idle state.
func Initial() State {
	return State{}
}

// Idle reports whether no request is running and nothing is shown.
func (s State) Idle() bool {
	return !s.Fetching && !s.Error && s.Book == nil
}

// Reduce applies action to state and returns the new state.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case KindReset:
		return Initial()
	case KindStart:
		return State{Fetching: true}
	case KindFail:
		state.Fetching = false
		state.Error = true
		return state
	case KindComplete:
		return State{Book: action.Payload}
	default:
		return state
	}
}

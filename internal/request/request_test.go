package request

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/lepinkainen/bookdice/internal/book"
)

func sampleRecord(title string) *book.Record {
	return &book.Record{Title: title, Authors: []string{}, Categories: []string{}}
}

// reachableStates covers every state the reducer can produce.
func reachableStates() map[string]State {
	return map[string]State{
		"initial":         Initial(),
		"fetching":        {Fetching: true},
		"error":           {Error: true},
		"book":            {Book: sampleRecord("Birds")},
		"error with book": {Error: true, Book: sampleRecord("Birds")},
	}
}

func TestReduceResetAlwaysReturnsInitial(t *testing.T) {
	for name, state := range reachableStates() {
		t.Run(name, func(t *testing.T) {
			got := Reduce(state, Reset())
			assert.Equal(t, Initial(), got)
			assert.True(t, got.Idle())
		})
	}
}

func TestReduceStartAlwaysFetches(t *testing.T) {
	for name, state := range reachableStates() {
		t.Run(name, func(t *testing.T) {
			got := Reduce(state, Start())
			assert.Equal(t, State{Fetching: true, Error: false, Book: nil}, got)
		})
	}
}

func TestReduceCompleteStoresPayload(t *testing.T) {
	payload := sampleRecord("Birds of the World")

	for name, state := range reachableStates() {
		t.Run(name, func(t *testing.T) {
			got := Reduce(state, Complete(payload))
			assert.False(t, got.Fetching)
			assert.False(t, got.Error)
			assert.True(t, got.Book == payload, "payload must be stored as is")
		})
	}
}

func TestReduceFailKeepsBook(t *testing.T) {
	payload := sampleRecord("Birds")

	got := Reduce(State{Fetching: true}, Fail())
	assert.Equal(t, State{Error: true}, got)

	got = Reduce(State{Book: payload}, Fail())
	assert.True(t, got.Error)
	assert.False(t, got.Fetching)
	assert.True(t, got.Book == payload)
}

func TestReduceUnknownActionIsNoop(t *testing.T) {
	for name, state := range reachableStates() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, state, Reduce(state, Action{}))
			assert.Equal(t, state, Reduce(state, Action{Kind: Kind(42)}))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "reset", KindReset.String())
	assert.Equal(t, "start", KindStart.String())
	assert.Equal(t, "fail", KindFail.String())
	assert.Equal(t, "complete", KindComplete.String())
	assert.Equal(t, "none", KindNone.String())
}

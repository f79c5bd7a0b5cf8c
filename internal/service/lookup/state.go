package lookup

import (
	"fmt"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// StateKind enumerates lookup states.
type StateKind int

const (
	StateIdle StateKind = iota
	StateFound
	StateNotFound
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// State is an immutable snapshot of the lookup result.
//
// Entries is set only for StateFound. DerivativeOf is only ever set for
// StateNotFound, and only when the word is an inflected form of a headword.
type State struct {
	Kind         StateKind
	Entries      []domain.Entry
	DerivativeOf *string
}

// Idle is the initial state and the neutral marker emitted before every Found.
func Idle() State { return State{Kind: StateIdle} }

// Found returns a found state holding entries.
func Found(entries []domain.Entry) State {
	return State{Kind: StateFound, Entries: entries}
}

// NotFound returns a not-found state. derivativeOf may be nil.
func NotFound(derivativeOf *string) State {
	return State{Kind: StateNotFound, DerivativeOf: derivativeOf}
}

func (s State) String() string {
	switch s.Kind {
	case StateFound:
		return fmt.Sprintf("found(%d entries)", len(s.Entries))
	case StateNotFound:
		if s.DerivativeOf != nil {
			return fmt.Sprintf("not_found(derivative of %q)", *s.DerivativeOf)
		}
		return "not_found"
	}
	return s.Kind.String()
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// Resolved is a completed lookup: found, not found or derivative.
type Resolved struct {
	Result domain.LookupResult
}

// Failed is a transport failure. It never changes the state.
type Failed struct {
	Err error
}

func (Resolved) isEvent() {}
func (Failed) isEvent()   {}

// Transition returns the observable states ev produces from s, in order.
// An empty result means the state is unchanged.
//
// Entering Found always yields two states, Idle then Found, so observers see a
// fresh result even when the entries equal the previous ones.
func Transition(s State, ev Event) []State {
	switch e := ev.(type) {
	case Resolved:
		if e.Result.Found {
			return []State{Idle(), Found(e.Result.Entries)}
		}
		return []State{NotFound(e.Result.DerivativeOf)}
	case Failed:
		return nil
	}
	return nil
}

package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

func sampleEntries() []domain.Entry {
	return []domain.Entry{{
		PartOfSpeech: "Verb",
		Senses:       []domain.Sense{{Definition: domain.TextDefinition("to move fast"), SubSenses: []domain.Sense{}}},
	}}
}

func TestTransition_FoundEmitsIdleThenFound(t *testing.T) {
	t.Parallel()

	starts := []State{Idle(), Found(sampleEntries()), NotFound(nil), NotFound(strPtr("run"))}
	for _, start := range starts {
		t.Run(start.String(), func(t *testing.T) {
			t.Parallel()

			got := Transition(start, Resolved{Result: domain.LookupResult{Found: true, Entries: sampleEntries()}})
			require.Len(t, got, 2)
			assert.Equal(t, StateIdle, got[0].Kind)
			assert.Equal(t, StateFound, got[1].Kind)
			assert.Equal(t, sampleEntries(), got[1].Entries)
		})
	}
}

func TestTransition_NotFound(t *testing.T) {
	t.Parallel()

	got := Transition(Found(sampleEntries()), Resolved{Result: domain.LookupResult{Word: "xyzzy"}})
	require.Len(t, got, 1)
	assert.Equal(t, StateNotFound, got[0].Kind)
	assert.Nil(t, got[0].DerivativeOf)
	assert.Nil(t, got[0].Entries)
}

func TestTransition_Derivative(t *testing.T) {
	t.Parallel()

	got := Transition(Idle(), Resolved{Result: domain.LookupResult{DerivativeOf: strPtr("run")}})
	require.Len(t, got, 1)
	assert.Equal(t, NotFound(strPtr("run")), got[0])
}

func TestTransition_FailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	errs := []error{
		&provider.ServerError{Status: 500},
		provider.ErrNoResponse,
		&provider.RequestSetupError{Err: assert.AnError},
		provider.ErrMalformedResponse,
	}
	for _, err := range errs {
		assert.Empty(t, Transition(Found(sampleEntries()), Failed{Err: err}), "err %v", err)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle().String())
	assert.Equal(t, "found(1 entries)", Found(sampleEntries()).String())
	assert.Equal(t, "not_found", NotFound(nil).String())
	assert.Equal(t, `not_found(derivative of "run")`, NotFound(strPtr("run")).String())
	assert.Equal(t, "StateKind(9)", StateKind(9).String())
}

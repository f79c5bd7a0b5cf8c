package lookup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

type mockResolver struct {
	ResolveFunc func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error)
	calls       atomic.Int32
}

func (m *mockResolver) Resolve(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
	m.calls.Add(1)
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, word, region)
	}
	return domain.LookupResult{Word: word, Region: region}, nil
}

// recorder collects hook calls.
type recorder struct {
	mu     sync.Mutex
	states []State
	errs   []error
	words  []string
}

func (r *recorder) onState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) onError(word string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words = append(r.words, word)
	r.errs = append(r.errs, err)
}

func (r *recorder) snapshot() ([]State, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...), append([]error(nil), r.errs...)
}

func newTestMachine(res resolver) (*Machine, *recorder) {
	rec := &recorder{}
	m := NewMachine(testLogger(), res, domain.RegionUS,
		WithStateHook(rec.onState),
		WithErrorHook(rec.onError),
	)
	return m, rec
}

// serviceResolver wires the real service over a mock provider.
func serviceResolver(prov *mockProvider) *Service {
	return NewService(testLogger(), prov, nil, nil, cacheCfg())
}

func TestMachine_InitialState(t *testing.T) {
	t.Parallel()

	m, _ := newTestMachine(&mockResolver{})
	assert.Equal(t, StateIdle, m.State().Kind)
	assert.Equal(t, domain.RegionUS, m.Region())
	assert.Equal(t, "American", m.RegionLabel())
	assert.Empty(t, m.Word())
}

func TestMachine_InvalidRegionFallsBack(t *testing.T) {
	t.Parallel()

	m := NewMachine(testLogger(), &mockResolver{}, domain.Region("au"))
	assert.Equal(t, domain.DefaultRegion, m.Region())
}

func TestMachine_Submit_Found(t *testing.T) {
	t.Parallel()

	m, rec := newTestMachine(serviceResolver(foundProvider()))

	require.NoError(t, m.Submit(context.Background(), "run"))

	states, errs := rec.snapshot()
	require.Len(t, states, 2)
	assert.Equal(t, StateIdle, states[0].Kind)
	assert.Equal(t, StateFound, states[1].Kind)
	assert.Empty(t, errs)

	assert.Equal(t, StateFound, m.State().Kind)
	require.Len(t, m.State().Entries, 1)
	assert.Equal(t, "Verb", m.State().Entries[0].PartOfSpeech)
	assert.Equal(t, "run", m.Word())
}

func TestMachine_Submit_RepeatedFoundPassesThroughIdle(t *testing.T) {
	t.Parallel()

	m, rec := newTestMachine(serviceResolver(foundProvider()))

	require.NoError(t, m.Submit(context.Background(), "run"))
	require.NoError(t, m.Submit(context.Background(), "run"))

	states, _ := rec.snapshot()
	kinds := make([]StateKind, len(states))
	for i, s := range states {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []StateKind{StateIdle, StateFound, StateIdle, StateFound}, kinds)
	assert.Equal(t, states[1].Entries, states[3].Entries)
}

func TestMachine_Submit_BlankIsNoOp(t *testing.T) {
	t.Parallel()

	res := &mockResolver{}
	m, rec := newTestMachine(res)
	m.SetWord("keep")

	for _, w := range []string{"", "   ", "\t\n"} {
		require.NoError(t, m.Submit(context.Background(), w))
	}

	states, errs := rec.snapshot()
	assert.Empty(t, states)
	assert.Empty(t, errs)
	assert.Zero(t, res.calls.Load())
	assert.Equal(t, StateIdle, m.State().Kind)
	assert.Equal(t, "keep", m.Word())
}

func TestMachine_Submit_NotFound(t *testing.T) {
	t.Parallel()

	m, rec := newTestMachine(serviceResolver(&mockProvider{}))

	require.NoError(t, m.Submit(context.Background(), "xyzzy"))

	assert.Equal(t, NotFound(nil), m.State())
	states, _ := rec.snapshot()
	require.Len(t, states, 1)
	assert.Equal(t, StateNotFound, states[0].Kind)
}

func TestMachine_Submit_DerivativeOf(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{FetchFunc: func(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error) {
		return []provider.LexicalEntry{
			{LexicalCategory: "Verb", DerivativeOf: []provider.DerivativeOf{{Text: "run"}}},
			verbSections()[0],
			verbSections()[0],
		}, nil
	}}
	m, _ := newTestMachine(serviceResolver(prov))

	require.NoError(t, m.Submit(context.Background(), "ran"))

	st := m.State()
	assert.Equal(t, StateNotFound, st.Kind)
	require.NotNil(t, st.DerivativeOf)
	assert.Equal(t, "run", *st.DerivativeOf)
}

func TestMachine_Submit_ServerErrorLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	prov := &mockProvider{FetchFunc: func(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error) {
		if fail.Load() {
			return nil, &provider.ServerError{Status: 500}
		}
		return verbSections(), nil
	}}
	m, rec := newTestMachine(serviceResolver(prov))

	require.NoError(t, m.Submit(context.Background(), "run"))
	before := m.State()

	fail.Store(true)
	err := m.Submit(context.Background(), "walk")

	var se *provider.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, before, m.State())

	states, errs := rec.snapshot()
	assert.Len(t, states, 2, "failure emits no states")
	require.Len(t, errs, 1)
	assert.ErrorAs(t, errs[0], &se)
	assert.Equal(t, []string{"walk"}, rec.words)
}

func TestMachine_Submit_OtherTransportErrors(t *testing.T) {
	t.Parallel()

	for _, tErr := range []error{provider.ErrNoResponse, &provider.RequestSetupError{Err: assert.AnError}, provider.ErrMalformedResponse} {
		res := &mockResolver{ResolveFunc: func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
			return domain.LookupResult{}, tErr
		}}
		m, rec := newTestMachine(res)

		err := m.Submit(context.Background(), "run")
		assert.ErrorIs(t, err, tErr)
		assert.Equal(t, Idle(), m.State())

		states, errs := rec.snapshot()
		assert.Empty(t, states)
		assert.Len(t, errs, 1)
	}
}

func TestMachine_Submit_UsesSelectedRegion(t *testing.T) {
	t.Parallel()

	var got []domain.Region
	var mu sync.Mutex
	res := &mockResolver{ResolveFunc: func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
		mu.Lock()
		got = append(got, region)
		mu.Unlock()
		return domain.LookupResult{Word: word, Region: region}, nil
	}}
	m, _ := newTestMachine(res)

	require.NoError(t, m.Submit(context.Background(), "lorry"))
	assert.Equal(t, domain.RegionGB, m.ToggleRegion())
	assert.Equal(t, "British", m.RegionLabel())
	require.NoError(t, m.Submit(context.Background(), "lorry"))
	m.SetRegion(domain.Region("bogus"))
	assert.Equal(t, domain.RegionGB, m.Region())
	m.SetRegion(domain.RegionUS)
	require.NoError(t, m.Submit(context.Background(), "lorry"))

	assert.Equal(t, []domain.Region{domain.RegionUS, domain.RegionGB, domain.RegionUS}, got)
}

func TestMachine_Edit_TypingHello(t *testing.T) {
	t.Parallel()

	m, _ := newTestMachine(&mockResolver{})

	word := ""
	for _, r := range []rune("руддщ") {
		word = m.Edit(word + string(r))
	}
	assert.Equal(t, "hello", word)
	assert.Equal(t, "hello", m.Word())

	assert.Equal(t, "hell", m.Edit("hell"), "deletion passes through")
}

func TestMachine_Lookup_SubmitsCurrentWord(t *testing.T) {
	t.Parallel()

	var gotWord string
	res := &mockResolver{ResolveFunc: func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
		gotWord = word
		return domain.LookupResult{Word: word}, nil
	}}
	m, _ := newTestMachine(res)

	m.SetWord("Руддщ ")
	require.NoError(t, m.Lookup(context.Background()))
	assert.Equal(t, "hello", gotWord)
	assert.Equal(t, "hello", m.Word())
}

func TestMachine_StaleCompletionDiscarded(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	res := &mockResolver{ResolveFunc: func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
		if word == "slow" {
			close(slowStarted)
			<-releaseSlow
			return domain.LookupResult{Word: word, Found: true, Entries: sampleEntries()}, nil
		}
		return domain.LookupResult{Word: word}, nil
	}}
	m, rec := newTestMachine(res)

	done := make(chan error, 1)
	go func() { done <- m.Submit(context.Background(), "slow") }()
	<-slowStarted

	require.NoError(t, m.Submit(context.Background(), "fast"))
	close(releaseSlow)
	require.NoError(t, <-done)

	assert.Equal(t, NotFound(nil), m.State(), "the later submission wins")
	states, _ := rec.snapshot()
	require.Len(t, states, 1)
	assert.Equal(t, StateNotFound, states[0].Kind)
}

func TestMachine_Run(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var words []string
	res := &mockResolver{ResolveFunc: func(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
		mu.Lock()
		words = append(words, word)
		mu.Unlock()
		return domain.LookupResult{Word: word, Found: true, Entries: sampleEntries()}, nil
	}}
	m, _ := newTestMachine(res)

	events := make(chan SelectionEvent, 4)
	events <- SelectionEvent{Source: "  Hello "}
	events <- SelectionEvent{Source: "   "}
	// и + combining breve composes to й.
	events <- SelectionEvent{Source: "\u0438\u0306"}
	close(events)

	require.NoError(t, m.Run(context.Background(), events))

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"hello", "q"}, words)
	assert.Equal(t, "q", m.Word())
	assert.Equal(t, StateFound, m.State().Kind)
}

func TestMachine_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	m, _ := newTestMachine(&mockResolver{})
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan SelectionEvent)

	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(ctx, events) }()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

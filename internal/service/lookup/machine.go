package lookup

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/translit"
)

type resolver interface {
	Resolve(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error)
}

// SelectionEvent carries raw text selected in a host context.
type SelectionEvent struct {
	Source string
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithStateHook registers fn to observe every emitted state, in order.
// fn must not call Submit synchronously.
func WithStateHook(fn func(State)) MachineOption {
	return func(m *Machine) { m.onState = fn }
}

// WithErrorHook registers fn to receive transport failures of current lookups.
func WithErrorHook(fn func(word string, err error)) MachineOption {
	return func(m *Machine) { m.onError = fn }
}

// Machine owns the current word, the selected region and the lookup state.
//
// Every Submit is tagged with a generation number. When lookups overlap, only
// the completion of the most recently issued one is applied; older ones are
// discarded.
type Machine struct {
	log      *slog.Logger
	resolver resolver
	onState  func(State)
	onError  func(word string, err error)

	mu     sync.Mutex
	word   string
	region domain.Region
	state  State
	gen    uint64

	// emitMu keeps hook calls of one completion together.
	emitMu sync.Mutex
}

// NewMachine creates a Machine in the Idle state. An invalid region falls back
// to domain.DefaultRegion.
func NewMachine(logger *slog.Logger, r resolver, region domain.Region, opts ...MachineOption) *Machine {
	if !region.IsValid() {
		region = domain.DefaultRegion
	}
	m := &Machine{
		log:      logger.With("component", "lookup_machine"),
		resolver: r,
		region:   region,
		state:    Idle(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Word returns the current word.
func (m *Machine) Word() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.word
}

// Edit applies a single keystroke: updated is the word after the edit.
// A newly appended rune typed on the Cyrillic layout is mapped to Latin.
func (m *Machine) Edit(updated string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.word = translit.Convert(m.word, updated)
	return m.word
}

// SetWord replaces the current word wholesale (paste, programmatic set).
func (m *Machine) SetWord(word string) {
	m.mu.Lock()
	m.word = word
	m.mu.Unlock()
}

func (m *Machine) Region() domain.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.region
}

// SetRegion selects the region used by subsequent lookups.
func (m *Machine) SetRegion(r domain.Region) {
	if !r.IsValid() {
		return
	}
	m.mu.Lock()
	m.region = r
	m.mu.Unlock()
}

// ToggleRegion switches between us and gb and returns the new region.
func (m *Machine) ToggleRegion() domain.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.region = m.region.Toggle()
	return m.region
}

// RegionLabel returns the dialect name of the selected region.
func (m *Machine) RegionLabel() string {
	return m.Region().Label()
}

// State returns the current lookup state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Lookup submits the current word.
func (m *Machine) Lookup(ctx context.Context) error {
	return m.Submit(ctx, m.Word())
}

// Submit normalizes word and looks it up in the selected region.
//
// Blank input is a no-op. A transport failure leaves the state unchanged and
// is returned; for the latest submission it also goes to the error hook.
func (m *Machine) Submit(ctx context.Context, word string) error {
	sub, ok := m.begin(word)
	if !ok {
		return nil
	}
	return m.complete(ctx, sub)
}

type submission struct {
	word   string
	region domain.Region
	gen    uint64
}

// begin makes the prepared word current and issues a new generation.
func (m *Machine) begin(word string) (submission, bool) {
	prepared := PrepareWord(word)
	if prepared == "" {
		return submission{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.word = prepared
	m.gen++
	return submission{word: prepared, region: m.region, gen: m.gen}, true
}

func (m *Machine) complete(ctx context.Context, sub submission) error {
	res, err := m.resolver.Resolve(ctx, sub.word, sub.region)

	var ev Event = Resolved{Result: res}
	if err != nil {
		ev = Failed{Err: err}
	}

	m.mu.Lock()
	if sub.gen != m.gen {
		m.mu.Unlock()
		m.log.DebugContext(ctx, "stale lookup discarded", slog.String("word", sub.word))
		return err
	}
	states := Transition(m.state, ev)
	if n := len(states); n > 0 {
		m.state = states[n-1]
	}
	m.emitMu.Lock()
	m.mu.Unlock()
	defer m.emitMu.Unlock()

	if m.onState != nil {
		for _, s := range states {
			m.onState(s)
		}
	}
	if err != nil {
		m.log.WarnContext(ctx, "lookup error", slog.String("word", sub.word), slog.String("error", err.Error()))
		if m.onError != nil {
			m.onError(sub.word, err)
		}
	}
	return err
}

// Run consumes selection events until ctx is done or events is closed. Each
// event is NFC-normalized and submitted without blocking the loop; submissions
// are ordered by arrival. Run waits for in-flight lookups before returning.
func (m *Machine) Run(ctx context.Context, events <-chan SelectionEvent) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			sub, ok := m.begin(norm.NFC.String(ev.Source))
			if !ok {
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = m.complete(ctx, sub)
			}()
		}
	}
}

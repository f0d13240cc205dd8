package sim

import (
	"fmt"

	"github.com/inference-sim/proxel-sim/sim/hazard"
)

// Clock selects which supplementary variable a transition's hazard reads.
type Clock int

const (
	// ClockAge is the time spent in the current state. Every transition resets it.
	ClockAge Clock = iota
	// ClockMemory is the second supplementary variable. It survives transitions
	// unless the firing transition resets it.
	ClockMemory
)

func (c Clock) String() string {
	switch c {
	case ClockAge:
		return "age"
	case ClockMemory:
		return "memory"
	default:
		return fmt.Sprintf("Clock(%d)", int(c))
	}
}

// ParseClock maps a clock name to a Clock. The empty string selects ClockAge.
func ParseClock(name string) (Clock, error) {
	switch name {
	case "", "age":
		return ClockAge, nil
	case "memory":
		return ClockMemory, nil
	default:
		return ClockAge, fmt.Errorf("unknown clock %q; valid clocks: age, memory", name)
	}
}

// Transition moves probability mass from From to To at the rate given by Hazard,
// evaluated at the supplementary variable selected by Clock.
type Transition struct {
	Name        string
	From, To    int
	Hazard      hazard.Hazard
	Clock       Clock
	ResetMemory bool // zero the memory counter when this transition fires
}

// Model is the transition table of a proxel model: an enumerable set of discrete
// states and, for each state, the competing transitions leaving it.
// States without outgoing transitions are absorbing.
type Model struct {
	Name        string
	states      []string
	index       map[string]int
	initial     int
	transitions [][]Transition
	usesMemory  bool
}

// NewModel creates a model over the given states with all mass initially in initial.
func NewModel(name string, states []string, initial string) (*Model, error) {
	if len(states) == 0 {
		return nil, ErrEmptyModel
	}
	m := &Model{
		Name:        name,
		states:      append([]string(nil), states...),
		index:       make(map[string]int, len(states)),
		transitions: make([][]Transition, len(states)),
	}
	for i, s := range states {
		if s == "" {
			return nil, fmt.Errorf("model %q: state %d has an empty name", name, i)
		}
		if _, dup := m.index[s]; dup {
			return nil, fmt.Errorf("model %q: duplicate state %q", name, s)
		}
		m.index[s] = i
	}
	idx, err := m.StateIndex(initial)
	if err != nil {
		return nil, fmt.Errorf("model %q: initial state: %w", name, err)
	}
	m.initial = idx
	return m, nil
}

// StateIndex returns the index of the named state.
func (m *Model) StateIndex(name string) (int, error) {
	idx, ok := m.index[name]
	if !ok {
		return -1, fmt.Errorf("%w %q", ErrUnknownState, name)
	}
	return idx, nil
}

// AddTransition appends t to the transitions leaving t.From.
func (m *Model) AddTransition(t Transition) error {
	if t.From < 0 || t.From >= len(m.states) {
		return fmt.Errorf("%w: source index %d", ErrUnknownState, t.From)
	}
	if t.To < 0 || t.To >= len(m.states) {
		return fmt.Errorf("%w: target index %d", ErrUnknownState, t.To)
	}
	if t.Hazard == nil {
		return fmt.Errorf("model %q: transition %s->%s has no hazard", m.Name, m.states[t.From], m.states[t.To])
	}
	if t.Clock != ClockAge && t.Clock != ClockMemory {
		return fmt.Errorf("model %q: transition %s->%s has invalid clock %v", m.Name, m.states[t.From], m.states[t.To], t.Clock)
	}
	if t.Name == "" {
		t.Name = m.states[t.From] + "->" + m.states[t.To]
	}
	if t.Clock == ClockMemory {
		m.usesMemory = true
	}
	m.transitions[t.From] = append(m.transitions[t.From], t)
	return nil
}

// Connect adds an age-clocked transition between two named states.
func (m *Model) Connect(from, to string, h hazard.Hazard) error {
	f, err := m.StateIndex(from)
	if err != nil {
		return err
	}
	t, err := m.StateIndex(to)
	if err != nil {
		return err
	}
	return m.AddTransition(Transition{From: f, To: t, Hazard: h})
}

// Transitions returns the transitions leaving state, in insertion order.
func (m *Model) Transitions(state int) []Transition {
	return m.transitions[state]
}

// NumStates returns the number of discrete states.
func (m *Model) NumStates() int { return len(m.states) }

// StateName returns the name of state i.
func (m *Model) StateName(i int) string { return m.states[i] }

// States returns a copy of the state names in index order.
func (m *Model) States() []string { return append([]string(nil), m.states...) }

// InitialState returns the index of the state holding all mass at time 0.
func (m *Model) InitialState() int { return m.initial }

// UsesMemory reports whether any transition reads the memory clock. The solver
// holds the memory counter at zero for models that do not.
func (m *Model) UsesMemory() bool { return m.usesMemory }

// Package gamestate holds the finite state machine that gates gameplay.
package gamestate

// State is the top-level game state.
type State uint8

const (
	InGame State = iota // default
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case InGame:
		return "in_game"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// Hook runs during a transition with the state being left and the one being entered.
type Hook func(from, to State)

// Machine owns the current state. Systems Request transitions during a frame;
// Apply commits the last request at the start of the next frame, running the
// OnExit hooks of the old state and then the OnEnter hooks of the new one.
type Machine struct {
	current State
	next    State
	pending bool

	onEnter map[State][]Hook
	onExit  map[State][]Hook
}

func NewMachine() *Machine {
	return &Machine{
		current: InGame,
		onEnter: make(map[State][]Hook),
		onExit:  make(map[State][]Hook),
	}
}

func (m *Machine) Current() State { return m.current }

// Is reports whether s is the current state.
func (m *Machine) Is(s State) bool { return m.current == s }

// Request schedules a transition to s. The last request before Apply wins.
func (m *Machine) Request(s State) {
	m.next = s
	m.pending = true
}

// Pending returns the requested state, if any.
func (m *Machine) Pending() (State, bool) {
	return m.next, m.pending
}

func (m *Machine) OnEnter(s State, h Hook) { m.onEnter[s] = append(m.onEnter[s], h) }
func (m *Machine) OnExit(s State, h Hook)  { m.onExit[s] = append(m.onExit[s], h) }

// Apply commits a pending request. It reports the transition, or ok=false
// when nothing was pending or the request named the current state.
func (m *Machine) Apply() (from, to State, ok bool) {
	if !m.pending {
		return m.current, m.current, false
	}
	m.pending = false
	if m.next == m.current {
		return m.current, m.current, false
	}
	from, to = m.current, m.next
	for _, h := range m.onExit[from] {
		h(from, to)
	}
	m.current = to
	for _, h := range m.onEnter[to] {
		h(from, to)
	}
	return from, to, true
}

package state

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI application
type State int

const (
	// Browsing - Main screen showing the project summary and save actions
	Browsing State = iota

	// EditingTitle - Inline editor for the project title
	EditingTitle

	// PickingDestination - Save-as destination picker is open
	PickingDestination

	// ViewingHistory - Save history listing
	ViewingHistory
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case Browsing:
		return "Browsing"
	case EditingTitle:
		return "EditingTitle"
	case PickingDestination:
		return "PickingDestination"
	case ViewingHistory:
		return "ViewingHistory"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the state is a valid state
func (s State) IsValid() bool {
	return s >= Browsing && s <= ViewingHistory
}

// Transition represents a state transition
type Transition struct {
	From State
	To   State
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// Machine manages state transitions and validation
type Machine struct {
	current State
	history []State
}

// NewMachine creates a new state machine with the given initial state
func NewMachine(initial State) *Machine {
	return &Machine{
		current: initial,
		history: []State{initial},
	}
}

// Current returns the current state
func (m *Machine) Current() State {
	return m.current
}

// Transition transitions to a new state
func (m *Machine) Transition(to State) tea.Cmd {
	if !to.IsValid() {
		return func() tea.Msg {
			return ErrorMsg{
				Error: fmt.Errorf("invalid state transition to %s", to),
			}
		}
	}

	transition := Transition{From: m.current, To: to}
	m.current = to
	m.history = append(m.history, to)

	return func() tea.Msg {
		return TransitionMsg{Transition: transition}
	}
}

// CanGoBack returns true if there's a previous state to go back to
func (m *Machine) CanGoBack() bool {
	return len(m.history) > 1
}

// GoBack transitions to the previous state
func (m *Machine) GoBack() tea.Cmd {
	if !m.CanGoBack() {
		return nil
	}

	// Remove current state and get previous
	m.history = m.history[:len(m.history)-1]
	previous := m.history[len(m.history)-1]

	transition := Transition{From: m.current, To: previous}
	m.current = previous

	return func() tea.Msg {
		return TransitionMsg{Transition: transition}
	}
}

// Reset resets the state machine to the given state
func (m *Machine) Reset(initial State) {
	m.current = initial
	m.history = []State{initial}
}

// Messages for state machine events
type (
	// TransitionMsg is sent when a state transition occurs
	TransitionMsg struct {
		Transition Transition
	}

	// ErrorMsg is sent when a state machine error occurs
	ErrorMsg struct {
		Error error
	}
)

package tracing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TUIIntegration bridges the tracing manager with Bubble Tea events so
// the controller can record interactions with one call per site.
type TUIIntegration struct {
	manager *Manager
}

// NewTUIIntegration creates a new TUI integration helper
func NewTUIIntegration(manager *Manager) *TUIIntegration {
	return &TUIIntegration{manager: manager}
}

// TrackKeyMsg tracks a Bubble Tea key message
func (t *TUIIntegration) TrackKeyMsg(msg tea.KeyMsg, currentState string) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackKeyPress(msg.String(), currentState)
}

// TrackStateChange tracks a state transition in the TUI
func (t *TUIIntegration) TrackStateChange(oldState, newState, trigger string) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackStateTransition(oldState, newState, trigger)
}

// TrackMenuNavigation tracks a selection within a menu
func (t *TUIIntegration) TrackMenuNavigation(menu, selection string) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackMenuSelection(menu, selection)
}

// TrackSaveFailure tracks a save attempt that ended in an error
func (t *TUIIntegration) TrackSaveFailure(mode string, err error) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackSaveFailure(mode, err)
}

// TrackError tracks a component error surfaced through the TUI
func (t *TUIIntegration) TrackError(err error, component string) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackError(err, component)
}

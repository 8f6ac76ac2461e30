package tracing

import (
	"fmt"
	"sync"
	"time"

	"blockpad-cli/save"
)

// Manager is the high-level facade over the tracing system. It hides
// tracer construction and offers convenience methods shaped around the
// application's actual events.
type Manager struct {
	tracer    Tracer
	config    Config
	sessionID string
	mu        sync.RWMutex
	closed    bool
}

// NewManager creates a tracing manager. When tracing is disabled the
// manager wraps a no-op tracer.
func NewManager(config Config, version string) (*Manager, error) {
	if !config.Enabled {
		return &Manager{tracer: NewNoOpTracer(), config: config, sessionID: "disabled"}, nil
	}

	local, err := NewLocalTracer(config, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	manager := &Manager{
		tracer:    local,
		config:    config,
		sessionID: local.SessionID(),
	}

	// Session start is best effort; tracing never fails the app.
	_ = manager.TrackStateTransition("", "session_start", "application_launch")

	return manager, nil
}

// SessionID returns the current session identifier.
func (m *Manager) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// TrackKeyPress records a key press in a given UI state.
func (m *Manager) TrackKeyPress(key, target string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}

	event := NewUserActionEvent(m.sessionID, "key_press", target)
	event.Key = key
	return m.tracer.TrackUserAction(*event)
}

// TrackMenuSelection records a menu choice.
func (m *Manager) TrackMenuSelection(menu, selection string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}

	event := NewUserActionEvent(m.sessionID, "menu_select", menu)
	event.Value = selection
	return m.tracer.TrackUserAction(*event)
}

// TrackStateTransition records navigation between UI states.
func (m *Manager) TrackStateTransition(from, to, trigger string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}

	return m.tracer.TrackNavigation(*NewNavigationEvent(m.sessionID, from, to, trigger))
}

// TrackSaveOutcome records a completed save.
func (m *Manager) TrackSaveOutcome(outcome save.Outcome, duration time.Duration) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}

	event := NewSaveEvent(m.sessionID, string(outcome.Mode), outcome.Filename)
	event.Bytes = outcome.Bytes
	event.DurationMS = duration / time.Millisecond
	event.Succeeded = true
	return m.tracer.TrackSave(*event)
}

// TrackSaveFailure records a failed save attempt.
func (m *Manager) TrackSaveFailure(mode string, err error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}

	event := NewSaveEvent(m.sessionID, mode, "")
	event.Succeeded = false
	return m.tracer.TrackSave(*event)
}

// TrackError records an error with component context.
func (m *Manager) TrackError(err error, component string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed || err == nil {
		return nil
	}

	return m.tracer.TrackError(*NewErrorEvent(m.sessionID, err.Error(), component))
}

// Flush persists pending events.
func (m *Manager) Flush() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil
	}
	return m.tracer.Flush()
}

// Close flushes and shuts down the tracer. Safe to call once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.tracer.Close()
}

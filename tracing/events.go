package tracing

import (
	"errors"
	"time"
)

// BaseEvent provides the fields shared by all event types.
type BaseEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// EventType returns the type identifier for this event
func (b BaseEvent) EventType() string {
	return b.Type
}

// Timestamp returns when this event occurred
func (b BaseEvent) Timestamp() time.Time {
	return b.CreatedAt
}

// UserActionEvent tracks user interactions like key presses and menu selections
type UserActionEvent struct {
	BaseEvent
	Action string `json:"action"` // e.g. "key_press", "menu_select"
	Target string `json:"target"` // e.g. "main_menu", "destination_picker"
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}

// NewUserActionEvent creates a new user action event
func NewUserActionEvent(sessionID, action, target string) *UserActionEvent {
	return &UserActionEvent{
		BaseEvent: BaseEvent{
			Type:      "user_action",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Action: action,
		Target: target,
	}
}

// Validate ensures the event data is complete and valid
func (u *UserActionEvent) Validate() error {
	if u.Action == "" {
		return errors.New("action is required")
	}
	if u.Target == "" {
		return errors.New("target is required")
	}
	return nil
}

// SaveEvent tracks the outcome of one save operation
type SaveEvent struct {
	BaseEvent
	Mode       string        `json:"mode"` // download, new, existing
	Filename   string        `json:"filename"`
	Bytes      int           `json:"bytes"`
	DurationMS time.Duration `json:"duration_ms"`
	Succeeded  bool          `json:"succeeded"`
	Cancelled  bool          `json:"cancelled"`
}

// NewSaveEvent creates a new save event
func NewSaveEvent(sessionID, mode, filename string) *SaveEvent {
	return &SaveEvent{
		BaseEvent: BaseEvent{
			Type:      "save",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Mode:     mode,
		Filename: filename,
	}
}

// Validate ensures the event data is complete and valid
func (s *SaveEvent) Validate() error {
	if s.Mode == "" {
		return errors.New("mode is required")
	}
	return nil
}

// NavigationEvent records state transitions and the user journey
type NavigationEvent struct {
	BaseEvent
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Trigger   string `json:"trigger"`
}

// NewNavigationEvent creates a new navigation event
func NewNavigationEvent(sessionID, fromState, toState, trigger string) *NavigationEvent {
	return &NavigationEvent{
		BaseEvent: BaseEvent{
			Type:      "navigation",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		FromState: fromState,
		ToState:   toState,
		Trigger:   trigger,
	}
}

// Validate ensures the event data is complete and valid
func (n *NavigationEvent) Validate() error {
	if n.ToState == "" {
		return errors.New("to_state is required")
	}
	if n.Trigger == "" {
		return errors.New("trigger is required")
	}
	return nil
}

// ErrorEvent tracks errors and diagnostic information
type ErrorEvent struct {
	BaseEvent
	Error     string `json:"error"`
	Component string `json:"component,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// NewErrorEvent creates a new error event
func NewErrorEvent(sessionID, errorMsg, component string) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: BaseEvent{
			Type:      "error",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Error:     errorMsg,
		Component: component,
	}
}

// Validate ensures the event data is complete and valid
func (e *ErrorEvent) Validate() error {
	if e.Error == "" {
		return errors.New("error message is required")
	}
	return nil
}

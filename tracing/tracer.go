// Package tracing records user interactions and save outcomes for the
// blockpad CLI, buffered locally as JSON session files.
package tracing

import (
	"time"
)

// Tracer is the contract for recording session events. Different
// implementations (local, no-op) can be swapped without changing
// client code.
type Tracer interface {
	// TrackEvent records a structured event with session context
	TrackEvent(event Event) error

	// TrackUserAction records user interactions like key presses and menu selections
	TrackUserAction(action UserActionEvent) error

	// TrackSave records the outcome of a save operation
	TrackSave(save SaveEvent) error

	// TrackNavigation records state transitions
	TrackNavigation(nav NavigationEvent) error

	// TrackError records errors and diagnostic information
	TrackError(err ErrorEvent) error

	// Flush ensures all pending events are persisted
	Flush() error

	// Close gracefully shuts down the tracer and performs cleanup
	Close() error
}

// Event is the base interface for all trackable events.
type Event interface {
	// EventType returns the type identifier for this event
	EventType() string

	// Timestamp returns when this event occurred
	Timestamp() time.Time

	// Validate ensures the event data is complete and valid
	Validate() error
}

// SessionInfo contains metadata about the current session
type SessionInfo struct {
	ID        string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	Platform  string    `json:"platform"`
	Version   string    `json:"version"`
}

// EventBatch is the on-disk shape of one flush.
type EventBatch struct {
	Session SessionInfo `json:"session"`
	Events  []Event     `json:"events"`
}

// Config holds configuration for the tracing system
type Config struct {
	Enabled       bool          `json:"enabled"`
	LocalDir      string        `json:"local_dir"`
	MaxSessions   int           `json:"max_sessions"`
	FlushInterval time.Duration `json:"flush_interval"`
	MaxBufferSize int           `json:"max_buffer_size"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		LocalDir:      "~/.blockpad/traces",
		MaxSessions:   10,
		FlushInterval: 10 * time.Second,
		MaxBufferSize: 1000,
	}
}

// NoOpTracer discards all events, eliminating nil checks when tracing
// is disabled.
type NoOpTracer struct{}

func (n *NoOpTracer) TrackEvent(event Event) error              { return nil }
func (n *NoOpTracer) TrackUserAction(a UserActionEvent) error   { return nil }
func (n *NoOpTracer) TrackSave(s SaveEvent) error               { return nil }
func (n *NoOpTracer) TrackNavigation(v NavigationEvent) error   { return nil }
func (n *NoOpTracer) TrackError(e ErrorEvent) error             { return nil }
func (n *NoOpTracer) Flush() error                              { return nil }
func (n *NoOpTracer) Close() error                              { return nil }

// NewNoOpTracer creates a tracer that discards all events
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

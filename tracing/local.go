package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalTracer buffers events in memory and persists them as JSON
// session files under the configured directory.
type LocalTracer struct {
	config      Config
	session     SessionInfo
	buffer      []Event
	bufferMutex sync.Mutex
	flushTicker *time.Ticker
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewLocalTracer creates a new local file tracer with the given configuration
func NewLocalTracer(config Config, version string) (*LocalTracer, error) {
	dir, err := expandPath(config.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", config.LocalDir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create traces directory %s: %w", dir, err)
	}

	session := SessionInfo{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Version:   version,
	}

	tracer := &LocalTracer{
		config:   config,
		session:  session,
		buffer:   make([]Event, 0, config.MaxBufferSize),
		stopChan: make(chan struct{}),
	}

	if config.FlushInterval > 0 {
		tracer.startBackgroundFlushing()
	}

	return tracer, nil
}

// SessionID returns the tracer's session identifier.
func (l *LocalTracer) SessionID() string {
	return l.session.ID
}

// TrackEvent records a structured event with session context
func (l *LocalTracer) TrackEvent(event Event) error {
	if !l.config.Enabled {
		return nil
	}

	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()

	l.buffer = append(l.buffer, event)

	if len(l.buffer) >= l.config.MaxBufferSize {
		return l.flushUnsafe()
	}

	return nil
}

// TrackUserAction records user interactions like key presses and menu selections
func (l *LocalTracer) TrackUserAction(action UserActionEvent) error {
	return l.TrackEvent(&action)
}

// TrackSave records the outcome of a save operation
func (l *LocalTracer) TrackSave(save SaveEvent) error {
	return l.TrackEvent(&save)
}

// TrackNavigation records state transitions
func (l *LocalTracer) TrackNavigation(nav NavigationEvent) error {
	return l.TrackEvent(&nav)
}

// TrackError records errors and diagnostic information
func (l *LocalTracer) TrackError(err ErrorEvent) error {
	return l.TrackEvent(&err)
}

// Flush ensures all pending events are persisted
func (l *LocalTracer) Flush() error {
	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()
	return l.flushUnsafe()
}

// Close gracefully shuts down the tracer and performs cleanup
func (l *LocalTracer) Close() error {
	if l.flushTicker != nil {
		l.flushTicker.Stop()
		close(l.stopChan)
		l.wg.Wait()
	}

	if err := l.Flush(); err != nil {
		return fmt.Errorf("failed to flush during close: %w", err)
	}

	l.session.EndTime = time.Now()

	return l.cleanupOldSessions()
}

// startBackgroundFlushing starts a goroutine that periodically flushes the buffer
func (l *LocalTracer) startBackgroundFlushing() {
	l.flushTicker = time.NewTicker(l.config.FlushInterval)
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.flushTicker.C:
				l.bufferMutex.Lock()
				if len(l.buffer) > 0 {
					_ = l.flushUnsafe() // Ignore errors in background flush
				}
				l.bufferMutex.Unlock()
			case <-l.stopChan:
				return
			}
		}
	}()
}

// flushUnsafe writes the buffer to disk. Caller must hold the mutex.
func (l *LocalTracer) flushUnsafe() error {
	if len(l.buffer) == 0 {
		return nil
	}

	sessionCopy := l.session
	sessionCopy.EndTime = time.Now()

	batch := EventBatch{
		Session: sessionCopy,
		Events:  make([]Event, len(l.buffer)),
	}
	copy(batch.Events, l.buffer)

	filename := fmt.Sprintf("session_%s_%d.json", l.session.ID, time.Now().UnixNano())

	dir, _ := expandPath(l.config.LocalDir)
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write events to %s: %w", path, err)
	}

	l.buffer = l.buffer[:0]

	return nil
}

// cleanupOldSessions keeps at most MaxSessions session files on disk.
func (l *LocalTracer) cleanupOldSessions() error {
	if l.config.MaxSessions <= 0 {
		return nil
	}

	dir, err := expandPath(l.config.LocalDir)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var sessions []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "session_") && strings.HasSuffix(entry.Name(), ".json") {
			sessions = append(sessions, entry.Name())
		}
	}

	if len(sessions) <= l.config.MaxSessions {
		return nil
	}

	sort.Strings(sessions)
	for _, name := range sessions[:len(sessions)-l.config.MaxSessions] {
		_ = os.Remove(filepath.Join(dir, name))
	}

	return nil
}

// expandPath resolves a leading ~ to the user home directory.
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Package history keeps an append-only log of completed saves in the
// blockpad config directory.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry records one completed save.
type Entry struct {
	Time        time.Time `yaml:"time"`
	Filename    string    `yaml:"filename"`
	Destination string    `yaml:"destination,omitempty"`
	Bytes       int       `yaml:"bytes"`
	Mode        string    `yaml:"mode"`
}

// Log reads and appends save history at a fixed file path.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates a history log backed by the given file.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append adds one entry to the log.
func (l *Log) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Entries returns all recorded saves, oldest first.
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// read loads the log; a missing file is an empty log.
func (l *Log) read() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

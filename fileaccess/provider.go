// Package fileaccess abstracts picking a save destination and writing
// project bytes to it, so the save flow works the same whether the
// destination comes from an interactive picker or a test double.
package fileaccess

import (
	"context"
	"errors"

	"blockpad-cli/project"
)

// ErrCancelled signals that the user dismissed the destination picker
// without choosing anything. It is a distinguished non-error outcome:
// callers swallow it silently instead of surfacing a failure.
var ErrCancelled = errors.New("file selection cancelled by user")

// IsCancellation reports whether err represents user cancellation of a picker.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Destination is a granted reference to a chosen save location,
// reusable across multiple saves.
type Destination struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Writable is a sink for one write sequence: write the payload, then
// close exactly once. Close after a successful write commits the file;
// Close after a failed or missing write discards any partial data.
type Writable interface {
	Write(data []byte) error
	Close() error
}

// Provider is the platform file-access capability. It may be
// unavailable, in which case only the blob-download save path exists.
type Provider interface {
	// Available reports whether destination picking and direct writes
	// are supported on this host.
	Available() bool

	// ShowSaveFilePicker prompts the user for a destination, suggesting
	// the given filename. Returns ErrCancelled if the user backs out.
	ShowSaveFilePicker(ctx context.Context, suggestedName string) (Destination, error)

	// CreateWritable opens a sink for the destination. Acquire the sink
	// before starting the async save chain: deferring acquisition risks
	// losing the granted destination on some hosts.
	CreateWritable(ctx context.Context, dest Destination) (Writable, error)

	// WriteToWritable writes serialized content to the sink.
	WriteToWritable(ctx context.Context, w Writable, content *project.Content) error

	// CloseWritable releases the sink. Must be called on every exit
	// path, success or failure.
	CloseWritable(w Writable) error
}

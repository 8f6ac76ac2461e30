package fileaccess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"blockpad-cli/project"
)

// PickerFunc prompts the user for a save destination. The TUI supplies
// one backed by its destination picker screen; it must return
// ErrCancelled when the user backs out.
type PickerFunc func(ctx context.Context, suggestedName string) (Destination, error)

// OSProvider implements Provider on top of the local filesystem. The
// interactive part (destination picking) is injected so the provider
// itself stays UI-free.
type OSProvider struct {
	picker PickerFunc
}

// NewOSProvider creates a filesystem-backed provider. A nil picker
// makes the provider report itself unavailable, leaving only the
// blob-download save path.
func NewOSProvider(picker PickerFunc) *OSProvider {
	return &OSProvider{picker: picker}
}

// Available reports whether an interactive picker was wired in.
func (p *OSProvider) Available() bool {
	return p.picker != nil
}

// ShowSaveFilePicker delegates to the injected picker.
func (p *OSProvider) ShowSaveFilePicker(ctx context.Context, suggestedName string) (Destination, error) {
	if p.picker == nil {
		return Destination{}, fmt.Errorf("no file picker available")
	}
	return p.picker(ctx, suggestedName)
}

// CreateWritable opens an atomic sink for the destination: bytes go to
// a temp file next to the target and only land under the real name when
// the sink is closed after a successful write.
func (p *OSProvider) CreateWritable(ctx context.Context, dest Destination) (Writable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dest.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".blockpad-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to open writable for %s: %w", dest.Name, err)
	}

	return &fileWritable{file: tmp, target: dest.Path}, nil
}

// WriteToWritable writes the serialized content to the sink.
func (p *OSProvider) WriteToWritable(ctx context.Context, w Writable, content *project.Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.Write(content.Data)
}

// CloseWritable releases the sink.
func (p *OSProvider) CloseWritable(w Writable) error {
	return w.Close()
}

// fileWritable is a temp-file sink committed by rename on Close.
type fileWritable struct {
	file    *os.File
	target  string
	written bool
	closed  bool
}

func (f *fileWritable) Write(data []byte) error {
	if f.closed {
		return fmt.Errorf("write to closed sink")
	}
	if _, err := f.file.Write(data); err != nil {
		return fmt.Errorf("failed to write project data: %w", err)
	}
	f.written = true
	return nil
}

// Close commits the temp file to the target path when a write
// succeeded, and discards it otherwise. Safe to call once only.
func (f *fileWritable) Close() error {
	if f.closed {
		return fmt.Errorf("sink already closed")
	}
	f.closed = true

	if err := f.file.Close(); err != nil {
		os.Remove(f.file.Name())
		return fmt.Errorf("failed to close writable: %w", err)
	}

	if !f.written {
		os.Remove(f.file.Name())
		return nil
	}

	if err := os.Rename(f.file.Name(), f.target); err != nil {
		os.Remove(f.file.Name())
		return fmt.Errorf("failed to commit %s: %w", f.target, err)
	}
	return nil
}

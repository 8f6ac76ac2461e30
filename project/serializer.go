package project

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Content is the result of serializing a project: the archive bytes plus
// a flag the save flow uses to decide whether to show the extended
// extensions advisory.
type Content struct {
	Data                   []byte
	UsesExtendedExtensions bool
}

// Serializer produces a fresh serialized representation of the current
// project on demand. Implementations must not cache: every save gets the
// state as it is at that moment.
type Serializer interface {
	SerializeProject(ctx context.Context) (*Content, error)
}

// manifest is the project.json payload written at the root of the archive.
type manifest struct {
	Title      string   `json:"title"`
	Targets    []Target `json:"targets"`
	Extensions []string `json:"extensions"`
}

// SB3Serializer serializes a project into the sb3 zip layout: a
// project.json manifest plus one archive entry per asset.
type SB3Serializer struct {
	source func() *Project
}

// NewSB3Serializer creates a serializer over a project source. The source
// is called on every serialization so edits made between saves are picked up.
func NewSB3Serializer(source func() *Project) *SB3Serializer {
	return &SB3Serializer{source: source}
}

// SerializeProject builds the zip archive for the current project state.
func (s *SB3Serializer) SerializeProject(ctx context.Context) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := s.source()
	if p == nil {
		return nil, fmt.Errorf("no project loaded")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entry, err := zw.Create("project.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest entry: %w", err)
	}

	m := manifest{
		Title:      p.Title,
		Targets:    p.Targets,
		Extensions: p.Extensions,
	}
	if m.Targets == nil {
		m.Targets = []Target{}
	}
	if m.Extensions == nil {
		m.Extensions = []string{}
	}
	if err := json.NewEncoder(entry).Encode(&m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	for _, asset := range p.Assets {
		w, err := zw.Create(asset.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create asset entry %s: %w", asset.Name, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("failed to write asset %s: %w", asset.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &Content{
		Data:                   buf.Bytes(),
		UsesExtendedExtensions: p.UsesExtendedExtensions(),
	}, nil
}

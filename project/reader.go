package project

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Read loads a serialized sb3 archive back into a Project. The archive
// must contain a project.json manifest; every other entry is kept as an
// opaque asset.
func Read(data []byte) (*Project, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open project archive: %w", err)
	}

	var p Project
	foundManifest := false

	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", file.Name, err)
		}

		if file.Name == "project.json" {
			var m manifest
			if err := json.Unmarshal(content, &m); err != nil {
				return nil, fmt.Errorf("failed to decode manifest: %w", err)
			}
			p.Title = m.Title
			p.Targets = m.Targets
			p.Extensions = m.Extensions
			foundManifest = true
			continue
		}

		p.Assets = append(p.Assets, Asset{Name: file.Name, Data: content})
	}

	if !foundManifest {
		return nil, fmt.Errorf("archive has no project.json manifest")
	}

	return &p, nil
}

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"blockpad-cli/config"
	"blockpad-cli/fileaccess"
)

func TestInfoCmd_Execute(t *testing.T) {
	// Arrange
	original := config.ConfigFilePath
	config.ConfigFilePath = filepath.Join(t.TempDir(), "config.yml")
	t.Cleanup(func() { config.ConfigFilePath = original })

	manager := config.NewManager()
	if err := manager.UpdateLastDestination(fileaccess.Destination{
		Name: "Game.sb3",
		Path: "/tmp/projects/Game.sb3",
	}); err != nil {
		t.Fatalf("UpdateLastDestination failed: %v", err)
	}

	cmd := NewInfoCmd(manager)
	var out bytes.Buffer
	cmd.out = &out

	// Act
	err := cmd.Execute(nil)

	// Assert
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	rendered := out.String()
	for _, want := range []string{"Config file:", "Downloads dir:", "Game.sb3"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected output to contain '%s', got:\n%s", want, rendered)
		}
	}
}

func TestInfoCmd_Execute_NoLastSave(t *testing.T) {
	// Arrange
	original := config.ConfigFilePath
	config.ConfigFilePath = filepath.Join(t.TempDir(), "config.yml")
	t.Cleanup(func() { config.ConfigFilePath = original })

	cmd := NewInfoCmd(config.NewManager())
	var out bytes.Buffer
	cmd.out = &out

	// Act
	err := cmd.Execute(nil)

	// Assert
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "Last save:     none") {
		t.Errorf("Expected 'none' for missing last save, got:\n%s", out.String())
	}
}

func TestInfoCmd_Execute_MissingManager(t *testing.T) {
	// Act
	err := NewInfoCmd(nil).Execute(nil)

	// Assert
	if err == nil {
		t.Error("Expected error when manager is not configured")
	}
}

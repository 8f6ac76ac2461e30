package tracing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"blockpad-cli/save"
)

func localConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.LocalDir = t.TempDir()
	cfg.FlushInterval = 0 // no background goroutine in tests
	return cfg
}

func TestLocalTracer_FlushWritesSessionFile(t *testing.T) {
	// Arrange
	cfg := localConfig(t)
	tracer, err := NewLocalTracer(cfg, "test")
	if err != nil {
		t.Fatalf("NewLocalTracer failed: %v", err)
	}

	// Act
	if err := tracer.TrackUserAction(*NewUserActionEvent(tracer.SessionID(), "key_press", "main_menu")); err != nil {
		t.Fatalf("TrackUserAction failed: %v", err)
	}
	if err := tracer.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	// Assert
	entries, err := os.ReadDir(cfg.LocalDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected one session file, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(cfg.LocalDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var batch struct {
		Session SessionInfo       `json:"session"`
		Events  []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if batch.Session.ID != tracer.SessionID() {
		t.Errorf("Expected session ID %s, got %s", tracer.SessionID(), batch.Session.ID)
	}
	if len(batch.Events) != 1 {
		t.Errorf("Expected one event, got %d", len(batch.Events))
	}
}

func TestLocalTracer_InvalidEventRejected(t *testing.T) {
	// Arrange
	tracer, err := NewLocalTracer(localConfig(t), "test")
	if err != nil {
		t.Fatalf("NewLocalTracer failed: %v", err)
	}

	// Act: a user action without action/target is invalid
	err = tracer.TrackUserAction(UserActionEvent{})

	// Assert
	if err == nil {
		t.Error("Expected validation error for empty event")
	}
}

func TestManager_DisabledIsNoOp(t *testing.T) {
	// Arrange
	cfg := DefaultConfig()
	cfg.Enabled = false

	// Act
	manager, err := NewManager(cfg, "test")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// Assert: everything is safe and silent
	if err := manager.TrackKeyPress("ctrl+s", "browsing"); err != nil {
		t.Errorf("Expected no-op tracking, got %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Errorf("Expected clean close, got %v", err)
	}
}

func TestManager_TrackSaveOutcome(t *testing.T) {
	// Arrange
	cfg := localConfig(t)
	manager, err := NewManager(cfg, "test")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// Act
	outcome := save.Outcome{Filename: "Game.sb3", Bytes: 42, Mode: save.ModeNew}
	if err := manager.TrackSaveOutcome(outcome, 0); err != nil {
		t.Errorf("TrackSaveOutcome failed: %v", err)
	}

	// Assert
	if err := manager.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	entries, _ := os.ReadDir(cfg.LocalDir)
	if len(entries) == 0 {
		t.Error("Expected session files after close")
	}
}

func TestManager_ClosedManagerStopsTracking(t *testing.T) {
	// Arrange
	manager, err := NewManager(localConfig(t), "test")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Act / Assert
	if err := manager.TrackKeyPress("q", "browsing"); err != nil {
		t.Errorf("Expected silent no-op after close, got %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
}

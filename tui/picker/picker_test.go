package picker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blockpad-cli/fileaccess"
)

func TestBridge_PickWithoutUIFails(t *testing.T) {
	// Arrange
	bridge := NewBridge()

	// Act
	_, err := bridge.Pick(context.Background(), "Game.sb3")

	// Assert
	if err == nil {
		t.Error("Expected error when no UI is attached")
	}
	if fileaccess.IsCancellation(err) {
		t.Error("Expected a hard error, not a cancellation")
	}
}

func TestBridge_RoundTrip(t *testing.T) {
	// Arrange
	bridge := NewBridge()
	requests := make(chan Request, 1)
	bridge.Attach(func(req Request) { requests <- req })

	// Act: answer the request from a fake UI
	go func() {
		req := <-requests
		if req.SuggestedName != "Game.sb3" {
			t.Errorf("Expected suggested name to reach the UI, got '%s'", req.SuggestedName)
		}
		req.Reply <- Result{Destination: fileaccess.Destination{Name: "Game.sb3", Path: "/tmp/Game.sb3"}}
	}()
	dest, err := bridge.Pick(context.Background(), "Game.sb3")

	// Assert
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if dest.Path != "/tmp/Game.sb3" {
		t.Errorf("Expected destination path '/tmp/Game.sb3', got '%s'", dest.Path)
	}
}

func TestBridge_ContextCancellationBecomesUserCancellation(t *testing.T) {
	// Arrange
	bridge := NewBridge()
	bridge.Attach(func(req Request) {}) // UI never answers
	ctx, cancel := context.WithCancel(context.Background())

	// Act
	done := make(chan error, 1)
	go func() {
		_, err := bridge.Pick(ctx, "Game.sb3")
		done <- err
	}()
	cancel()

	// Assert
	select {
	case err := <-done:
		if !fileaccess.IsCancellation(err) {
			t.Errorf("Expected cancellation error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Pick did not return after context cancellation")
	}
}

func newRequest(suggested string) Request {
	return Request{SuggestedName: suggested, Reply: make(chan Result, 1)}
}

func TestComponent_OpenPrefillsSuggestedName(t *testing.T) {
	// Arrange
	component := NewComponent("/tmp/projects", nil)

	// Act
	component.Open(newRequest("My Game.sb3"))

	// Assert
	if !component.Active() {
		t.Error("Expected component to be active after Open")
	}
	if !strings.Contains(component.View(), "My Game.sb3") {
		t.Error("Expected suggested name in view")
	}
}

func TestComponent_ConfirmTypedName(t *testing.T) {
	// Arrange
	component := NewComponent("/tmp/projects", nil)
	req := newRequest("Untitled.sb3")
	component.Open(req)

	// Act
	_, cmd := component.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	result := <-req.Reply
	if result.Err != nil {
		t.Fatalf("Expected destination, got error %v", result.Err)
	}
	if result.Destination.Name != "Untitled.sb3" {
		t.Errorf("Expected name 'Untitled.sb3', got '%s'", result.Destination.Name)
	}
	want := filepath.Join("/tmp/projects", "Untitled.sb3")
	if result.Destination.Path != want {
		t.Errorf("Expected path '%s', got '%s'", want, result.Destination.Path)
	}
	if cmd == nil {
		t.Fatal("Expected DoneMsg command after confirm")
	}
	if _, ok := cmd().(DoneMsg); !ok {
		t.Error("Expected DoneMsg after confirm")
	}
	if component.Active() {
		t.Error("Expected component to be inactive after confirm")
	}
}

func TestComponent_ConfirmAppendsExtension(t *testing.T) {
	// Arrange
	component := NewComponent("/tmp/projects", nil)
	req := newRequest("")
	component.Open(req)
	component.input.SetValue("Space Shooter")

	// Act
	component.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	result := <-req.Reply
	if result.Destination.Name != "Space Shooter.sb3" {
		t.Errorf("Expected extension to be appended, got '%s'", result.Destination.Name)
	}
}

func TestComponent_ConfirmEmptyNameRejected(t *testing.T) {
	// Arrange
	component := NewComponent("/tmp/projects", nil)
	req := newRequest("")
	component.Open(req)

	// Act
	_, cmd := component.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	if cmd != nil {
		t.Error("Expected no reply for empty filename")
	}
	if !component.Active() {
		t.Error("Expected component to stay active")
	}
	if !strings.Contains(component.View(), "Enter a filename.") {
		t.Error("Expected validation message in view")
	}
}

func TestComponent_EscCancels(t *testing.T) {
	// Arrange
	component := NewComponent("/tmp/projects", nil)
	req := newRequest("Game.sb3")
	component.Open(req)

	// Act
	component.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Assert
	result := <-req.Reply
	if !fileaccess.IsCancellation(result.Err) {
		t.Errorf("Expected cancellation, got %v", result.Err)
	}
}

func TestComponent_SelectRecentDestination(t *testing.T) {
	// Arrange
	recents := []fileaccess.Destination{
		{Name: "Game.sb3", Path: "/tmp/projects/Game.sb3"},
		{Name: "Platformer.sb3", Path: "/tmp/other/Platformer.sb3"},
	}
	component := NewComponent("/tmp/projects", recents)
	req := newRequest("Untitled.sb3")
	component.Open(req)

	// Act: focus the table, move to the second entry, confirm
	component.Update(tea.KeyMsg{Type: tea.KeyTab})
	component.Update(tea.KeyMsg{Type: tea.KeyDown})
	component.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	result := <-req.Reply
	if result.Err != nil {
		t.Fatalf("Expected destination, got error %v", result.Err)
	}
	if result.Destination.Path != "/tmp/other/Platformer.sb3" {
		t.Errorf("Expected recent destination to be reused, got '%s'", result.Destination.Path)
	}
}

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"blockpad-cli/alerts"
	"blockpad-cli/appstate"
	"blockpad-cli/fileaccess"
	"blockpad-cli/history"
	"blockpad-cli/project"
	"blockpad-cli/save"
	"blockpad-cli/tracing"
	"blockpad-cli/tui/picker"
	"blockpad-cli/tui/state"
)

type stubSerializer struct {
	content *project.Content
	err     error
}

func (s *stubSerializer) SerializeProject(ctx context.Context) (*project.Content, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.content != nil {
		return s.content, nil
	}
	return &project.Content{Data: []byte("sb3")}, nil
}

type stubDownloader struct {
	calls int
}

func (d *stubDownloader) Download(filename string, content *project.Content) {
	d.calls++
}

type stubRevealer struct {
	paths []string
	err   error
}

func (r *stubRevealer) RevealFile(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

type fixture struct {
	model      *Model
	store      *appstate.Store
	downloader *stubDownloader
	revealer   *stubRevealer
}

func newFixture(t *testing.T, pickerFunc fileaccess.PickerFunc) *fixture {
	t.Helper()

	store := appstate.New("My Game")
	downloader := &stubDownloader{}
	orch, err := save.New(save.Config{
		Serializer: &stubSerializer{},
		Provider:   fileaccess.NewOSProvider(pickerFunc),
		State:      store,
		Dispatch:   store,
		Downloader: downloader,
	})
	if err != nil {
		t.Fatalf("save.New failed: %v", err)
	}

	revealer := &stubRevealer{}
	model, err := New(Config{
		Store:        store,
		Orchestrator: orch,
		History:      history.NewLog(filepath.Join(t.TempDir(), "history.yml")),
		Picker:       picker.NewComponent(t.TempDir(), nil),
		Revealer:     revealer,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &fixture{model: model, store: store, downloader: downloader, revealer: revealer}
}

func TestNew_RequiresDependencies(t *testing.T) {
	// Act
	_, err := New(Config{})

	// Assert
	if err == nil {
		t.Error("Expected error for missing dependencies")
	}
}

func TestView_BrowsingShowsTitleAndActions(t *testing.T) {
	// Arrange
	f := newFixture(t, func(ctx context.Context, suggestedName string) (fileaccess.Destination, error) {
		return fileaccess.Destination{}, fileaccess.ErrCancelled
	})

	// Act
	view := f.model.View()

	// Assert
	for _, want := range []string{"My Game", "Save", "Download a copy", "Save history"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain '%s'", want)
		}
	}
}

func TestView_UnavailableProviderShowsDownloadOnly(t *testing.T) {
	// Arrange: nil picker means no file access
	f := newFixture(t, nil)

	// Act
	view := f.model.View()

	// Assert
	if !strings.Contains(view, "downloads only") {
		t.Errorf("Expected download-only status line, got:\n%s", view)
	}
}

func TestHandleKey_DownloadRunsSave(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)

	// Act
	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("Expected save command for download key")
	}
	msg := cmd()

	// Assert
	done, ok := msg.(saveDoneMsg)
	if !ok {
		t.Fatalf("Expected saveDoneMsg, got %T", msg)
	}
	if done.err != nil {
		t.Errorf("Expected download to succeed, got %v", done.err)
	}
	if f.downloader.calls != 1 {
		t.Errorf("Expected one download, got %d", f.downloader.calls)
	}
}

func TestHandleKey_SmartSaveFallsBackToDownloadWhenUnavailable(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)

	// Act
	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Expected save command")
	}
	cmd()

	// Assert
	if f.downloader.calls != 1 {
		t.Errorf("Expected smart save to download when file access is unavailable, got %d calls", f.downloader.calls)
	}
}

func TestUpdate_PickerRequestOpensPickerScreen(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	req := picker.Request{SuggestedName: "My Game.sb3", Reply: make(chan picker.Result, 1)}

	// Act
	f.model.Update(picker.RequestMsg{Request: req})

	// Assert
	if f.model.machine.Current() != state.PickingDestination {
		t.Errorf("Expected PickingDestination state, got %s", f.model.machine.Current())
	}
	if !strings.Contains(f.model.View(), "My Game.sb3") {
		t.Error("Expected suggested filename in picker view")
	}

	// Act: picker done returns to the previous screen
	f.model.picker.Cancel()
	f.model.Update(picker.DoneMsg{})

	// Assert
	if f.model.machine.Current() != state.Browsing {
		t.Errorf("Expected Browsing after picker done, got %s", f.model.machine.Current())
	}
}

func TestHandleKey_HistoryScreen(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)

	// Act
	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})

	// Assert
	if f.model.machine.Current() != state.ViewingHistory {
		t.Errorf("Expected ViewingHistory, got %s", f.model.machine.Current())
	}
	if !strings.Contains(f.model.View(), "No saves recorded yet.") {
		t.Error("Expected empty history message")
	}

	// Act: back
	f.model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.machine.Current() != state.Browsing {
		t.Errorf("Expected Browsing after back, got %s", f.model.machine.Current())
	}
}

func TestHandleKey_TitleEditor(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)

	// Act: open the editor and submit a new title
	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if f.model.machine.Current() != state.EditingTitle {
		t.Fatalf("Expected EditingTitle, got %s", f.model.machine.Current())
	}
	f.model.titleInput.SetValue("Space Shooter")
	f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	if f.store.Title() != "Space Shooter" {
		t.Errorf("Expected title to be updated, got '%s'", f.store.Title())
	}
	if !f.store.Unsaved() {
		t.Error("Expected retitle to mark the project unsaved")
	}
	if f.model.machine.Current() != state.Browsing {
		t.Errorf("Expected Browsing after submit, got %s", f.model.machine.Current())
	}
}

func TestHandleKey_RevealOpensLastDestination(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.store.SetLastDestination(fileaccess.Destination{Name: "My Game.sb3", Path: "/saves/My Game.sb3"})

	// Act
	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	// Assert
	if len(f.revealer.paths) != 1 {
		t.Fatalf("Expected one reveal call, got %d", len(f.revealer.paths))
	}
	if f.revealer.paths[0] != "/saves/My Game.sb3" {
		t.Errorf("Expected reveal at the stored path, got '%s'", f.revealer.paths[0])
	}
}

func TestHandleKey_RevealWithoutDestinationIsNoOp(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)

	// Act
	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	// Assert
	if len(f.revealer.paths) != 0 {
		t.Errorf("Expected no reveal without a destination, got %v", f.revealer.paths)
	}
}

func TestView_BrowsingShowsProjectSummary(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.model.summary = "12 blocks in 3 targets"

	// Act / Assert
	if !strings.Contains(f.model.View(), "12 blocks in 3 targets") {
		t.Error("Expected project summary under the title")
	}
}

func TestUpdate_SaveFailureIsTraced(t *testing.T) {
	// Arrange: a serializer that always fails, with tracing enabled
	store := appstate.New("My Game")
	orch, err := save.New(save.Config{
		Serializer: &stubSerializer{err: errors.New("disk full")},
		Provider:   fileaccess.NewOSProvider(nil),
		State:      store,
		Dispatch:   store,
		Downloader: &stubDownloader{},
	})
	if err != nil {
		t.Fatalf("save.New failed: %v", err)
	}

	cfg := tracing.DefaultConfig()
	cfg.LocalDir = t.TempDir()
	cfg.FlushInterval = 0
	manager, err := tracing.NewManager(cfg, "test")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	model, err := New(Config{
		Store:        store,
		Orchestrator: orch,
		History:      history.NewLog(filepath.Join(t.TempDir(), "history.yml")),
		Picker:       picker.NewComponent(t.TempDir(), nil),
		Tracing:      tracing.NewTUIIntegration(manager),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Act: the download fails and its completion message lands
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("Expected save command for download key")
	}
	done, ok := cmd().(saveDoneMsg)
	if !ok || done.err == nil {
		t.Fatalf("Expected a failed saveDoneMsg, got %v", done)
	}
	model.Update(done)
	if err := manager.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Assert: a session file records the failed save with its mode
	entries, err := os.ReadDir(cfg.LocalDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Expected session files after close")
	}
	var failedSaves int
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(cfg.LocalDir, entry.Name()))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		var batch struct {
			Events []map[string]interface{} `json:"events"`
		}
		if err := json.Unmarshal(data, &batch); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		for _, ev := range batch.Events {
			if ev["type"] == "save" && ev["succeeded"] == false {
				failedSaves++
				if ev["mode"] != "download" {
					t.Errorf("Expected failed save mode 'download', got %v", ev["mode"])
				}
			}
		}
	}
	if failedSaves != 1 {
		t.Errorf("Expected one failed save event, got %d", failedSaves)
	}
}

func TestUpdate_AlertExpiryDismisses(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.store.PushAlert(alerts.NewSaving())

	// Act
	f.model.Update(alertExpiredMsg{id: alerts.Saving})

	// Assert
	if len(f.store.Alerts()) != 0 {
		t.Error("Expected alert to be dismissed on expiry")
	}
}

func TestUpdate_AlertsChangeSchedulesDismissal(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	f.store.PushAlert(alerts.NewSaving())

	// Act
	_, cmd := f.model.Update(StateChangedMsg{Change: appstate.Change{Type: appstate.ChangeAlerts}})

	// Assert
	if cmd == nil {
		t.Error("Expected a dismissal timer for a transient alert")
	}
}

package keys

import (
	"blockpad-cli/tui/components/footer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GlobalKeyMap defines global key bindings used across the application
type GlobalKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Quit      key.Binding
	Back      key.Binding
	Save      key.Binding
	SaveAs    key.Binding
	Download  key.Binding
	Retitle   key.Binding
	History   key.Binding
	Reveal    key.Binding
	Dismiss   key.Binding
}

// DefaultGlobalKeys returns the default global key bindings
func DefaultGlobalKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("shift+s", "save as"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download copy"),
		),
		Retitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "retitle"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reveal last save"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss alert"),
		),
	}
}

// Handler provides a centralized way to handle common key patterns
type Handler struct {
	keys GlobalKeyMap
}

// NewHandler creates a new key handler with default bindings
func NewHandler() *Handler {
	return &Handler{
		keys: DefaultGlobalKeys(),
	}
}

// Keys returns the underlying key map
func (h *Handler) Keys() GlobalKeyMap {
	return h.keys
}

// HandleGlobalKeys handles global keys that should work in any state
func (h *Handler) HandleGlobalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return tea.Quit
	}
	return nil
}

// IsQuit returns true if the key message is a quit command
func (h *Handler) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Quit)
}

// IsBack returns true if the key message is a back command
func (h *Handler) IsBack(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Back)
}

// IsEnter returns true if the key message is an enter command
func (h *Handler) IsEnter(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Enter)
}

// IsSave returns true if the key message triggers the smart-save action
func (h *Handler) IsSave(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Save)
}

// IsSaveAs returns true if the key message triggers the save-as action
func (h *Handler) IsSaveAs(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.SaveAs)
}

// IsDownload returns true if the key message triggers the download action
func (h *Handler) IsDownload(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Download)
}

// IsRetitle returns true if the key message opens the title editor
func (h *Handler) IsRetitle(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Retitle)
}

// IsHistory returns true if the key message opens the save history
func (h *Handler) IsHistory(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.History)
}

// IsReveal returns true if the key message opens the last save location
func (h *Handler) IsReveal(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Reveal)
}

// IsDismiss returns true if the key message dismisses the top alert
func (h *Handler) IsDismiss(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Dismiss)
}

// FooterBindings returns appropriate footer bindings for different contexts
type FooterBindings struct{}

// NewFooterBindings creates a new footer bindings helper
func NewFooterBindings() *FooterBindings {
	return &FooterBindings{}
}

// Browsing returns bindings for the main screen
func (f *FooterBindings) Browsing() []footer.KeyBinding {
	return []footer.KeyBinding{
		{Key: "ctrl+s", Description: "save"},
		{Key: "shift+s", Description: "save as"},
		{Key: "d", Description: "download"},
		{Key: "t", Description: "retitle"},
		{Key: "h", Description: "history"},
		{Key: "r", Description: "reveal"},
		footer.QuitBinding,
	}
}

// Picker returns bindings for the destination picker
func (f *FooterBindings) Picker() []footer.KeyBinding {
	return []footer.KeyBinding{
		footer.NavigateBinding,
		footer.ConfirmBinding,
		{Key: "esc", Description: "cancel"},
	}
}

// TitleEditor returns bindings for the title editor
func (f *FooterBindings) TitleEditor() []footer.KeyBinding {
	return []footer.KeyBinding{
		footer.SubmitBinding,
		{Key: "esc", Description: "cancel"},
	}
}

// History returns bindings for the history screen
func (f *FooterBindings) History() []footer.KeyBinding {
	return []footer.KeyBinding{
		footer.BackBinding,
		footer.QuitBinding,
	}
}

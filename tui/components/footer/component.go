package footer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Component represents a footer with help text and a save-state marker
type Component struct {
	style      lipgloss.Style
	dirtyStyle lipgloss.Style
}

// New creates a new footer component
func New() *Component {
	return &Component{
		style: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aa00")). // Darker green (secondary)
			Faint(true),
		dirtyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffff00")). // Yellow
			Bold(true),
	}
}

// KeyBinding represents a single key binding
type KeyBinding struct {
	Key         string
	Description string
}

// View renders the footer with the provided key bindings
func (c *Component) View(bindings ...KeyBinding) string {
	if len(bindings) == 0 {
		return ""
	}

	var parts []string
	for _, binding := range bindings {
		parts = append(parts, binding.Format())
	}

	return c.style.Render(strings.Join(parts, "  "))
}

// ViewWithStatus renders the footer with an unsaved-changes marker in
// front of the key bindings when dirty is true.
func (c *Component) ViewWithStatus(dirty bool, bindings ...KeyBinding) string {
	help := c.View(bindings...)
	if !dirty {
		return help
	}
	marker := c.dirtyStyle.Render("● unsaved")
	if help == "" {
		return marker
	}
	return marker + "  " + help
}

// Format renders a key binding in the standard format
func (kb KeyBinding) Format() string {
	if kb.Key == "" || kb.Description == "" {
		return ""
	}
	return "[" + kb.Key + "] " + kb.Description
}

// Common key bindings for reuse
var (
	QuitBinding     = KeyBinding{Key: "q", Description: "quit"}
	BackBinding     = KeyBinding{Key: "esc/b", Description: "back"}
	EnterBinding    = KeyBinding{Key: "enter", Description: "select"}
	ConfirmBinding  = KeyBinding{Key: "enter", Description: "confirm"}
	SubmitBinding   = KeyBinding{Key: "enter", Description: "submit"}
	NavigateBinding = KeyBinding{Key: "↑/↓ or k/j", Description: "move"}
)

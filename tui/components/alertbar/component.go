package alertbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blockpad-cli/alerts"
)

// Component renders the pending alert queue as a stack of styled lines.
type Component struct {
	styles Styles
}

// Styles maps alert levels to their visual treatment.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultStyles returns the alert styling matching the application theme
func DefaultStyles() Styles {
	return Styles{
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ffff")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff00")).
			Bold(true),
		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffff00")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aa00")).
			Faint(true),
	}
}

// New creates a new alert bar component
func New() *Component {
	return &Component{styles: DefaultStyles()}
}

func (c *Component) styleFor(level alerts.Level) lipgloss.Style {
	switch level {
	case alerts.LevelSuccess:
		return c.styles.Success
	case alerts.LevelWarn:
		return c.styles.Warn
	case alerts.LevelError:
		return c.styles.Error
	default:
		return c.styles.Info
	}
}

// View renders the queue, oldest first. Persistent alerts carry a
// dismiss hint so the user knows they will not clear themselves.
func (c *Component) View(queue []alerts.Alert) string {
	if len(queue) == 0 {
		return ""
	}

	var lines []string
	for _, alert := range queue {
		line := c.styleFor(alert.Level).Render(alert.Message)
		if alert.AutoDismiss == 0 {
			line += " " + c.styles.Hint.Render("[x] dismiss")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

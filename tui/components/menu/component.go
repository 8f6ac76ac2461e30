package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is a single selectable menu entry. Disabled items render dimmed
// and cannot be selected; Hint is shown after the label when present.
type Item struct {
	Label    string
	Hint     string
	Disabled bool
}

// Component represents a vertical menu with selectable items
type Component struct {
	items         []Item
	selectedIndex int
	styles        Styles
}

// Styles defines the visual styling for menu components
type Styles struct {
	ItemStyle      lipgloss.Style
	SelectedStyle  lipgloss.Style
	DisabledStyle  lipgloss.Style
	HintStyle      lipgloss.Style
	Cursor         string
	SelectedCursor string
}

// DefaultStyles returns the default styling for menus that matches the application theme
func DefaultStyles() Styles {
	// Colors from the main application theme
	primary := lipgloss.Color("#00ff00") // Bright green
	bg := lipgloss.Color("#000000")      // Black

	return Styles{
		ItemStyle: lipgloss.NewStyle().
			Foreground(primary).
			Background(bg).
			Padding(0, 1),
		SelectedStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(primary).
			Bold(true).
			Padding(0, 1),
		DisabledStyle: lipgloss.NewStyle().
			Foreground(primary).
			Background(bg).
			Faint(true).
			Padding(0, 1),
		HintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aa00")).
			Faint(true),
		Cursor:         "  ",
		SelectedCursor: "> ",
	}
}

// New creates a new menu component with the given items
func New(items []Item) *Component {
	c := &Component{
		items:  items,
		styles: DefaultStyles(),
	}
	c.selectedIndex = c.firstEnabled()
	return c
}

// SetItems updates the menu items
func (c *Component) SetItems(items []Item) {
	c.items = items
	// Reset selection if it's out of bounds or landed on a disabled item
	if c.selectedIndex >= len(items) || (c.selectedIndex >= 0 && c.selectedIndex < len(items) && items[c.selectedIndex].Disabled) {
		c.selectedIndex = c.firstEnabled()
	}
}

// GetItems returns the current menu items
func (c *Component) GetItems() []Item {
	return c.items
}

// GetSelectedIndex returns the current selection index
func (c *Component) GetSelectedIndex() int {
	return c.selectedIndex
}

// GetSelectedItem returns the currently selected item
func (c *Component) GetSelectedItem() Item {
	if len(c.items) == 0 || c.selectedIndex < 0 || c.selectedIndex >= len(c.items) {
		return Item{}
	}
	return c.items[c.selectedIndex]
}

// SetStyles updates the menu styling
func (c *Component) SetStyles(styles Styles) {
	c.styles = styles
}

func (c *Component) firstEnabled() int {
	for i, item := range c.items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}

// move steps the selection by delta, wrapping around and skipping
// disabled items. A menu with no enabled items leaves the cursor alone.
func (c *Component) move(delta int) {
	if len(c.items) == 0 {
		return
	}
	idx := c.selectedIndex
	for range c.items {
		idx += delta
		if idx < 0 {
			idx = len(c.items) - 1
		}
		if idx >= len(c.items) {
			idx = 0
		}
		if !c.items[idx].Disabled {
			c.selectedIndex = idx
			return
		}
	}
}

// MenuSelectMsg is sent when an item is selected (Enter pressed)
type MenuSelectMsg struct {
	SelectedIndex int
	SelectedItem  Item
}

// Update handles keyboard input for menu navigation
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if len(c.items) == 0 {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			c.move(-1)
		case "down", "j":
			c.move(1)
		case "enter":
			selected := c.GetSelectedItem()
			if selected.Disabled {
				return c, nil
			}
			return c, func() tea.Msg {
				return MenuSelectMsg{
					SelectedIndex: c.selectedIndex,
					SelectedItem:  selected,
				}
			}
		}
	}

	return c, nil
}

// View renders the menu
func (c *Component) View() string {
	if len(c.items) == 0 {
		return ""
	}

	var menu string
	for i, item := range c.items {
		cursor := c.styles.Cursor
		style := c.styles.ItemStyle

		if item.Disabled {
			style = c.styles.DisabledStyle
		} else if i == c.selectedIndex {
			cursor = c.styles.SelectedCursor
			style = c.styles.SelectedStyle
		}

		line := style.Render(item.Label)
		if item.Hint != "" {
			line += " " + c.styles.HintStyle.Render(item.Hint)
		}
		menu += fmt.Sprintf("%s%s\n", cursor, line)
	}

	// Remove trailing newline
	if len(menu) > 0 {
		menu = menu[:len(menu)-1]
	}

	return menu
}

// IsEmpty returns true if the menu has no items
func (c *Component) IsEmpty() bool {
	return len(c.items) == 0
}

package picker

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	btable "github.com/evertras/bubble-table/table"

	"blockpad-cli/fileaccess"
	"blockpad-cli/project"
)

// DoneMsg is emitted after the active request was answered, in either
// direction, so the controller can leave the picker screen.
type DoneMsg struct{}

// Component is the save destination picker: a filename input over a
// table of recent destinations.
type Component struct {
	input       textinput.Model
	table       btable.Model
	recents     []fileaccess.Destination
	dir         string
	selectedIdx int
	tableFocus  bool
	request     *Request
	errorMsg    string
}

// NewComponent creates a picker writing into defaultDir, offering the
// given recent destinations for quick reuse.
func NewComponent(defaultDir string, recents []fileaccess.Destination) *Component {
	input := textinput.New()
	input.Placeholder = "filename"
	input.CharLimit = 128
	input.Width = 48

	columns := []btable.Column{
		btable.NewColumn("name", "Name", 28),
		btable.NewColumn("path", "Path", 52),
	}
	var rows []btable.Row
	for _, dest := range recents {
		rows = append(rows, btable.NewRow(map[string]interface{}{
			"name": dest.Name,
			"path": dest.Path,
		}))
	}
	table := btable.New(columns).WithRows(rows).Focused(true)

	return &Component{
		input:   input,
		table:   table,
		recents: recents,
		dir:     defaultDir,
	}
}

// Open arms the component with a pending request. The suggested name is
// pre-filled and the filename input takes focus.
func (c *Component) Open(req Request) {
	r := req
	c.request = &r
	c.input.SetValue(req.SuggestedName)
	c.input.CursorEnd()
	c.input.Focus()
	c.tableFocus = false
	c.selectedIdx = 0
	c.errorMsg = ""
}

// Active reports whether a request is waiting for an answer.
func (c *Component) Active() bool {
	return c.request != nil
}

func (c *Component) reply(result Result) tea.Cmd {
	if c.request == nil {
		return nil
	}
	c.request.Reply <- result
	c.request = nil
	c.input.Blur()
	return func() tea.Msg { return DoneMsg{} }
}

// Cancel answers the active request with user cancellation.
func (c *Component) Cancel() tea.Cmd {
	return c.reply(Result{Err: fileaccess.ErrCancelled})
}

func (c *Component) confirm() tea.Cmd {
	if c.tableFocus && c.selectedIdx >= 0 && c.selectedIdx < len(c.recents) {
		return c.reply(Result{Destination: c.recents[c.selectedIdx]})
	}

	name := c.input.Value()
	if name == "" {
		c.errorMsg = "Enter a filename."
		return nil
	}
	if filepath.Ext(name) == "" {
		name += project.Extension
	}
	return c.reply(Result{Destination: fileaccess.Destination{
		Name: name,
		Path: filepath.Join(c.dir, name),
	}})
}

// Update handles picker input while a request is active.
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if c.request == nil {
		return c, nil
	}

	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "esc":
			return c, c.Cancel()
		case "enter":
			return c, c.confirm()
		case "tab":
			if len(c.recents) > 0 {
				c.tableFocus = !c.tableFocus
				if c.tableFocus {
					c.input.Blur()
				} else {
					c.input.Focus()
				}
			}
			return c, nil
		case "up", "down":
			if c.tableFocus {
				if m.String() == "up" && c.selectedIdx > 0 {
					c.selectedIdx--
				}
				if m.String() == "down" && c.selectedIdx < len(c.recents)-1 {
					c.selectedIdx++
				}
				return c, nil
			}
		}
	}

	if !c.tableFocus {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	c.table, _ = c.table.Update(msg)
	return c, nil
}

// View renders the picker.
func (c *Component) View() string {
	if c.request == nil {
		return ""
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ffaa")).
		Bold(true).
		Underline(true).
		Padding(0, 1).
		Render("Save project as:")

	view := header
	view += "\n\n" + c.input.View()
	view += "\n" + lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("in %s", c.dir))

	if len(c.recents) > 0 {
		label := "Recent destinations:"
		if c.tableFocus {
			label = "Recent destinations (selected):"
		}
		view += "\n\n" + lipgloss.NewStyle().Faint(true).Render(label)
		view += "\n" + c.table.WithHighlightedRow(c.selectedIdx).View()
	}

	if c.errorMsg != "" {
		view += "\n\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true).
			Render(c.errorMsg)
	}
	return view
}

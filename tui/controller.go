// Package tui implements the terminal interface: a state-machine driven
// Bubble Tea model wiring the save orchestrator, the shared state
// store, and the screen components together.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blockpad-cli/alerts"
	"blockpad-cli/appstate"
	"blockpad-cli/history"
	"blockpad-cli/save"
	"blockpad-cli/tracing"
	"blockpad-cli/tui/components/alertbar"
	"blockpad-cli/tui/components/footer"
	"blockpad-cli/tui/components/menu"
	"blockpad-cli/tui/keys"
	"blockpad-cli/tui/picker"
	"blockpad-cli/tui/saver"
	"blockpad-cli/tui/state"
)

// StateChangedMsg is sent by the store subscription whenever shared
// state changes outside the update loop.
type StateChangedMsg struct {
	Change appstate.Change
}

type saveDoneMsg struct {
	err error
}

type alertExpiredMsg struct {
	id alerts.ID
}

// Revealer opens the platform file explorer at a saved file.
type Revealer interface {
	RevealFile(path string) error
}

// Config collects the controller's dependencies.
type Config struct {
	Store        *appstate.Store
	Orchestrator *save.Orchestrator
	History      *history.Log
	Picker       *picker.Component
	Tracing      *tracing.TUIIntegration

	// Revealer is optional; without it the reveal action is hidden.
	Revealer Revealer

	// ProjectSummary is an optional line shown under the title, e.g.
	// block and sprite counts of the loaded project.
	ProjectSummary string
}

// Model is the root Bubble Tea model.
type Model struct {
	store   *appstate.Store
	orch    *save.Orchestrator
	histLog *history.Log

	machine  *state.Machine
	keys     *keys.Handler
	footKeys *keys.FooterBindings

	menu       *menu.Component
	menuCmds   []func() tea.Cmd
	saver      *saver.Component
	picker     *picker.Component
	alertbar   *alertbar.Component
	footer     *footer.Component
	titleInput textinput.Model

	tracing  *tracing.TUIIntegration
	revealer Revealer
	summary  string

	saving       bool
	lastSaveMode string
	width        int
	quitting     bool
}

// New creates the root model.
func New(cfg Config) (*Model, error) {
	if cfg.Store == nil || cfg.Orchestrator == nil {
		return nil, fmt.Errorf("tui: store and orchestrator are required")
	}
	if cfg.Picker == nil {
		return nil, fmt.Errorf("tui: picker component is required")
	}

	titleInput := textinput.New()
	titleInput.Placeholder = "project title"
	titleInput.CharLimit = 100
	titleInput.Width = 40

	m := &Model{
		store:      cfg.Store,
		orch:       cfg.Orchestrator,
		histLog:    cfg.History,
		machine:    state.NewMachine(state.Browsing),
		keys:       keys.NewHandler(),
		footKeys:   keys.NewFooterBindings(),
		picker:     cfg.Picker,
		alertbar:   alertbar.New(),
		footer:     footer.New(),
		titleInput: titleInput,
		tracing:    cfg.Tracing,
		revealer:   cfg.Revealer,
		summary:    cfg.ProjectSummary,
	}

	statusLine, err := saver.New(cfg.Orchestrator, "save-status", renderSaveStatus)
	if err != nil {
		return nil, err
	}
	m.saver = statusLine

	items, cmds := m.buildMenu()
	m.menu = menu.New(items)
	m.menuCmds = cmds
	return m, nil
}

// renderSaveStatus is the saver component's child: a one-line summary
// of where the next save will go.
func renderSaveStatus(styleClass string, _ save.Action, caps save.Capabilities) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aa00"))
	switch {
	case !caps.Available:
		return style.Render("File saving unavailable, downloads only")
	case caps.TargetName != "":
		return style.Render("Saving to: " + caps.TargetName)
	default:
		return style.Render("No save location chosen yet")
	}
}

// buildMenu derives the action menu from the current capabilities. The
// returned command slice is index-aligned with the items; commands are
// built lazily so they always read fresh capabilities.
func (m *Model) buildMenu() ([]menu.Item, []func() tea.Cmd) {
	caps := m.orch.Capabilities()

	saveToLabel := "Save to last file"
	if caps.TargetName != "" {
		saveToLabel = "Save to " + caps.TargetName
	}

	_, hasDestination := m.store.LastDestination()

	items := []menu.Item{
		{Label: "Save", Hint: "ctrl+s"},
		{Label: saveToLabel, Disabled: !caps.Available || caps.TargetName == ""},
		{Label: "Save as...", Hint: "shift+s", Disabled: !caps.Available},
		{Label: "Download a copy", Hint: "d"},
		{Label: "Rename project", Hint: "t"},
		{Label: "Save history", Hint: "h"},
		{Label: "Reveal last save", Hint: "r", Disabled: m.revealer == nil || !hasDestination},
		{Label: "Quit", Hint: "q"},
	}
	cmds := []func() tea.Cmd{
		func() tea.Cmd { return m.startSave(m.orch.Capabilities().SmartSave, "smart") },
		func() tea.Cmd { return m.startSave(m.orch.Capabilities().SaveToLastFile, string(save.ModeExisting)) },
		func() tea.Cmd { return m.startSave(m.orch.Capabilities().SaveAsNew, string(save.ModeNew)) },
		func() tea.Cmd { return m.startSave(m.orch.Capabilities().Download, string(save.ModeDownload)) },
		func() tea.Cmd { return m.openTitleEditor() },
		func() tea.Cmd { return m.machineTransition(state.ViewingHistory) },
		func() tea.Cmd { return m.revealLastSave() },
		func() tea.Cmd { return tea.Quit },
	}
	return items, cmds
}

// revealLastSave opens the file explorer at the stored destination.
// Failures only leave a trace event; the explorer is a convenience.
func (m *Model) revealLastSave() tea.Cmd {
	if m.revealer == nil {
		return nil
	}
	dest, ok := m.store.LastDestination()
	if !ok {
		return nil
	}
	if err := m.revealer.RevealFile(dest.Path); err != nil && m.tracing != nil {
		_ = m.tracing.TrackError(err, "reveal")
	}
	return nil
}

func (m *Model) refreshMenu() {
	items, cmds := m.buildMenu()
	m.menu.SetItems(items)
	m.menuCmds = cmds
}

// runSave launches a save action off the update loop. Completion comes
// back as saveDoneMsg; failures were already routed to alerts by the
// orchestrator, so the message only clears the in-flight flag.
func (m *Model) runSave(action save.Action) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: action(context.Background())}
	}
}

func (m *Model) openTitleEditor() tea.Cmd {
	m.titleInput.SetValue(m.store.Title())
	m.titleInput.CursorEnd()
	m.titleInput.Focus()
	return m.machineTransition(state.EditingTitle)
}

func (m *Model) machineTransition(to state.State) tea.Cmd {
	from := m.machine.Current()
	cmd := m.machine.Transition(to)
	if m.tracing != nil {
		_ = m.tracing.TrackStateChange(from.String(), to.String(), "key")
	}
	return cmd
}

func (m *Model) goBack() tea.Cmd {
	from := m.machine.Current()
	cmd := m.machine.GoBack()
	if m.tracing != nil {
		_ = m.tracing.TrackStateChange(from.String(), m.machine.Current().String(), "back")
	}
	return cmd
}

// scheduleDismissals arms expiry timers for transient alerts.
func (m *Model) scheduleDismissals() tea.Cmd {
	var cmds []tea.Cmd
	for _, alert := range m.store.Alerts() {
		if alert.AutoDismiss > 0 {
			id := alert.ID
			cmds = append(cmds, tea.Tick(alert.AutoDismiss, func(time.Time) tea.Msg {
				return alertExpiredMsg{id: id}
			}))
		}
	}
	return tea.Batch(cmds...)
}

// dismissTopAlert removes the first persistent alert, or the first
// alert at all when only transient ones remain.
func (m *Model) dismissTopAlert() {
	queue := m.store.Alerts()
	if len(queue) == 0 {
		return
	}
	for _, alert := range queue {
		if alert.AutoDismiss == 0 {
			m.store.DismissAlert(alert.ID)
			return
		}
	}
	m.store.DismissAlert(queue[0].ID)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case picker.RequestMsg:
		m.picker.Open(msg.Request)
		return m, m.machineTransition(state.PickingDestination)

	case picker.DoneMsg:
		if m.machine.Current() == state.PickingDestination {
			return m, m.goBack()
		}
		return m, nil

	case StateChangedMsg:
		switch msg.Change.Type {
		case appstate.ChangeAlerts:
			return m, m.scheduleDismissals()
		case appstate.ChangeDestination, appstate.ChangeTitle:
			m.refreshMenu()
		}
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil && m.tracing != nil {
			_ = m.tracing.TrackSaveFailure(m.lastSaveMode, msg.err)
		}
		m.refreshMenu()
		return m, nil

	case alertExpiredMsg:
		m.store.DismissAlert(msg.id)
		return m, nil

	case state.TransitionMsg:
		return m, nil

	case menu.MenuSelectMsg:
		if m.tracing != nil {
			_ = m.tracing.TrackMenuNavigation("save_actions", msg.SelectedItem.Label)
		}
		if msg.SelectedIndex >= 0 && msg.SelectedIndex < len(m.menuCmds) {
			return m, m.menuCmds[msg.SelectedIndex]()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tracing != nil {
		_ = m.tracing.TrackKeyMsg(msg, m.machine.Current().String())
	}

	switch m.machine.Current() {
	case state.PickingDestination:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case state.EditingTitle:
		switch {
		case m.keys.IsEnter(msg):
			title := m.titleInput.Value()
			if title != "" && title != m.store.Title() {
				m.store.SetTitle(title)
				m.store.MarkUnsaved()
			}
			m.titleInput.Blur()
			return m, m.goBack()
		case msg.String() == "esc":
			m.titleInput.Blur()
			return m, m.goBack()
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case state.ViewingHistory:
		if m.keys.IsBack(msg) || m.keys.IsQuit(msg) {
			return m, m.goBack()
		}
		return m, nil
	}

	// Browsing
	caps := m.orch.Capabilities()
	switch {
	case m.keys.IsQuit(msg):
		m.quitting = true
		return m, tea.Quit
	case m.keys.IsSave(msg):
		return m, m.startSave(caps.SmartSave, "smart")
	case m.keys.IsSaveAs(msg):
		if caps.Available {
			return m, m.startSave(caps.SaveAsNew, string(save.ModeNew))
		}
		return m, nil
	case m.keys.IsDownload(msg):
		return m, m.startSave(caps.Download, string(save.ModeDownload))
	case m.keys.IsRetitle(msg):
		return m, m.openTitleEditor()
	case m.keys.IsHistory(msg):
		return m, m.machineTransition(state.ViewingHistory)
	case m.keys.IsReveal(msg):
		return m, m.revealLastSave()
	case m.keys.IsDismiss(msg):
		m.dismissTopAlert()
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) startSave(action save.Action, mode string) tea.Cmd {
	if action == nil {
		return nil
	}
	m.saving = true
	m.lastSaveMode = mode
	return m.runSave(action)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.machine.Current() {
	case state.PickingDestination:
		view := m.picker.View()
		view += "\n\n" + m.alertbar.View(m.store.Alerts())
		view += "\n" + m.footer.View(m.footKeys.Picker()...)
		return view

	case state.EditingTitle:
		header := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ffaa")).
			Bold(true).
			Underline(true).
			Padding(0, 1).
			Render("Rename project:")
		view := header
		view += "\n\n" + m.titleInput.View()
		view += "\n\n" + m.footer.View(m.footKeys.TitleEditor()...)
		return view

	case state.ViewingHistory:
		view := m.renderHistory()
		view += "\n\n" + m.footer.View(m.footKeys.History()...)
		return view
	}

	// Browsing
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ff00")).
		Bold(true).
		Padding(0, 1).
		Render(m.store.Title())

	view := header
	if m.summary != "" {
		view += "\n" + lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(m.summary)
	}
	view += "\n" + m.saver.View()
	view += "\n\n" + m.menu.View()
	if m.saving {
		view += "\n\n" + lipgloss.NewStyle().Faint(true).Render("Working...")
	}
	if bar := m.alertbar.View(m.store.Alerts()); bar != "" {
		view += "\n\n" + bar
	}
	view += "\n\n" + m.footer.ViewWithStatus(m.store.Unsaved(), m.footKeys.Browsing()...)
	return view
}

const historyDisplayLimit = 10

func (m *Model) renderHistory() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ffaa")).
		Bold(true).
		Underline(true).
		Padding(0, 1).
		Render("Save history:")

	if m.histLog == nil {
		return header + "\n\n" + lipgloss.NewStyle().Faint(true).Render("History is not enabled.")
	}

	entries, err := m.histLog.Entries()
	if err != nil {
		return header + "\n\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Render("Could not read history: "+err.Error())
	}
	if len(entries) == 0 {
		return header + "\n\n" + lipgloss.NewStyle().Faint(true).Render("No saves recorded yet.")
	}

	// Newest first
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	view := header + "\n"
	shown := 0
	for i := len(entries) - 1; i >= 0 && shown < historyDisplayLimit; i-- {
		e := entries[i]
		view += "\n" + lineStyle.Render(fmt.Sprintf(
			"%s  %-30s %8d bytes  %s",
			e.Time.Format("2006-01-02 15:04"), e.Filename, e.Bytes, e.Mode,
		))
		shown++
	}
	return view
}

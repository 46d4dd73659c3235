// Package ui runs the interactive terminal catalog viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/printers"
	"tableflip.dev/cardfuse/pkg/store"
	"tableflip.dev/cardfuse/pkg/view"
)

// UI launches the Bubble Tea program for a session.
type UI struct {
	Session *app.Session
	// Events, when set, reloads the selection whenever another process
	// writes it.
	Events <-chan store.Event
	Logger *zap.Logger

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Do runs the program until the user quits.
func (u *UI) Do(ctx context.Context) error {
	if u.Session == nil {
		return errors.New("ui requires a session")
	}
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if u.Input != nil {
		opts = append(opts, tea.WithInput(u.Input))
	}
	if u.Output != nil {
		opts = append(opts, tea.WithOutput(u.Output))
	}
	p := tea.NewProgram(New(u.Session, u.Events, u.Logger), opts...)
	if _, err := p.Run(); err != nil {
		// Cancellation is a normal way to stop, e.g. on SIGINT.
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modePanel
)

// columns in display order; the number keys sort by position.
var columns = []view.Column{view.ColumnID, view.ColumnName, view.ColumnPoint, view.ColumnGroup, view.ColumnRegion}

const keyHelp = "↑/↓ move · space toggle · a all · v reverse · R reset · 1-5 sort · / search · f region · F group · l language · ? help · d details · q quit"

// chrome is the number of lines around the table rows, counting the
// optional fallback warning.
const chrome = 9

type selectionChangedMsg struct{}
type watchClosedMsg struct{}

// Model is the Bubble Tea model of the catalog viewer.
type Model struct {
	session *app.Session
	logger  *zap.Logger
	events  <-chan store.Event

	mode   mode
	cursor int
	offset int

	input textinput.Model
	panel *panelModel

	regionIdx int
	groupIdx  int

	status string

	termWidth  int
	termHeight int
}

// New creates a model backed by the session.
func New(session *app.Session, events <-chan store.Event, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	m := Model{
		session: session,
		logger:  logger,
		events:  events,
		mode:    modeNormal,
		input:   ti,
		panel:   newPanel(80, 20),
	}
	m.syncPanel()
	return m
}

// Init starts listening for selection changes made elsewhere.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return watchClosedMsg{}
		}
		return selectionChangedMsg{}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.panel.SetSize(m.panelSize())
		m.clamp()
		return m, nil
	case selectionChangedMsg:
		if m.session.Reload() {
			m.status = "Selection reloaded"
			m.syncPanel()
		}
		return m, m.waitForChange()
	case watchClosedMsg:
		m.events = nil
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg.String(), msg)
	}
	if m.mode == modePanel {
		return m, m.panel.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(key string, msg tea.Msg) (Model, tea.Cmd) {
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		switch key {
		case "enter":
			m.mode = modeNormal
			m.input.Blur()
		case "esc":
			m.mode = modeNormal
			m.input.Reset()
			m.input.Blur()
			m.session.SetSearch("")
			m.clamp()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.session.SetSearch(m.input.Value())
			m.cursor = 0
			m.clamp()
			return m, cmd
		}
		return m, nil

	case modePanel:
		switch key {
		case "esc", "q":
			m.fail(m.session.Dismiss(m.panel.Kind()))
			m.syncPanel()
		case "?":
			m.session.ShowHelp()
			m.syncPanel()
		case "d":
			m.session.ShowDetails()
			m.syncPanel()
		default:
			if msg != nil {
				return m, m.panel.Update(msg)
			}
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.session.Rows()) - 1
	case "pgup":
		m.cursor -= m.tableHeight()
	case "pgdown":
		m.cursor += m.tableHeight()
	case "space", "enter", "x":
		m.toggleCurrent()
	case "a":
		if m.fail(m.session.SelectAll()) {
			m.status = "Selected all cards"
		}
	case "v":
		if m.fail(m.session.Reverse()) {
			m.status = "Selection reversed"
		}
	case "R":
		if m.fail(m.session.Reset()) {
			m.status = "Reset"
		}
		m.input.Reset()
		m.regionIdx, m.groupIdx = 0, 0
		m.cursor = 0
	case "1", "2", "3", "4", "5":
		c := columns[int(key[0]-'1')]
		m.session.SortBy(c)
		q := m.session.Query()
		m.status = fmt.Sprintf("Sorted by %s %s", c, q.Direction.Indicator())
	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.session.Query().Search)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, tea.Batch(cmd, textinput.Blink)
	case "f":
		regions := m.session.Catalog().Regions()
		m.regionIdx = (m.regionIdx + 1) % (len(regions) + 1)
		region := card.Region("")
		if m.regionIdx > 0 {
			region = regions[m.regionIdx-1]
		}
		m.session.SetRegionFilter(region)
		m.cursor = 0
	case "F":
		groups := m.session.Catalog().Groups()
		m.groupIdx = (m.groupIdx + 1) % (len(groups) + 1)
		group := card.Group("")
		if m.groupIdx > 0 {
			group = groups[m.groupIdx-1]
		}
		m.session.SetGroupFilter(group)
		m.cursor = 0
	case "l":
		l := m.session.CycleLanguage()
		m.status = "Language: " + m.session.Bundle().Catalog(l).Name
	case "?":
		m.session.ShowHelp()
		m.syncPanel()
	case "d":
		m.session.ShowDetails()
		m.syncPanel()
	case "esc":
		m.status = ""
	}
	m.clamp()
	return m, nil
}

func (m *Model) toggleCurrent() {
	rows := m.session.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return
	}
	r := rows[m.cursor]
	on, err := m.session.Toggle(r.ID)
	if !m.fail(err) {
		return
	}
	if on {
		m.status = "Selected " + r.Name
	} else {
		m.status = "Unselected " + r.Name
	}
}

// fail reports err on the status line and returns true when err is nil.
func (m *Model) fail(err error) bool {
	if err == nil {
		return true
	}
	m.logger.Warn("action failed", zap.Error(err))
	m.status = "ERR: " + err.Error()
	return false
}

// syncPanel follows the session's open panel.
func (m *Model) syncPanel() {
	switch m.session.Panel() {
	case app.PanelHelp:
		help, err := m.session.Help()
		if err != nil {
			help = "help unavailable: " + err.Error()
		}
		m.panel.ShowHelp(m.session.Labels().Help, help)
		m.mode = modePanel
	case app.PanelDetails:
		d := m.session.Details()
		lines := []string{}
		if len(d.Items) == 0 {
			lines = append(lines, d.Message)
		}
		for _, it := range d.Items {
			lines = append(lines, it.Card.Name, "  "+it.Line, "")
		}
		m.panel.ShowDetails(m.session.Labels().Details, lines)
		m.mode = modePanel
	default:
		if m.mode == modePanel {
			m.mode = modeNormal
		}
	}
}

func (m *Model) clamp() {
	n := len(m.session.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.tableHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset > n-h {
		m.offset = max(n-h, 0)
	}
}

func (m Model) tableHeight() int {
	if m.termHeight == 0 {
		return max(len(m.session.Rows()), 1)
	}
	return max(m.termHeight-chrome, 3)
}

func (m Model) panelSize() (int, int) {
	w, h := m.termWidth, m.termHeight-chrome+3
	if w == 0 {
		w = 80
	}
	if m.termHeight == 0 {
		h = 20
	}
	return w, h
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	pickedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
)

// View renders the summary, the filters, and either the table or the open
// panel.
func (m Model) View() string {
	st := m.session.State()
	labels := st.Labels
	c := m.session.Bundle().Catalog(st.Locale)

	lines := []string{
		titleStyle.Render("Card Fusion Calculator") + "  " + faintStyle.Render(c.Name),
		summaryStyle.Render(st.SummaryText) + "  " +
			faintStyle.Render(fmt.Sprintf("%s %d/%d", labels.Selected, st.Selected, st.Total)),
	}
	if st.Fallback {
		lines = append(lines, faintStyle.Render(c.Messages.Fallback))
	}

	search := m.input.View()
	if m.mode != modeSearch && st.Query.Search == "" {
		search = faintStyle.Render("/")
	}
	lines = append(lines, labels.Search+": "+search)

	region, group := labels.All, labels.All
	if st.Query.Region != "" {
		region = st.Query.Region.String()
	}
	if st.Query.Group != "" {
		group = st.Query.Group.String()
	}
	lines = append(lines, fmt.Sprintf("%s: %s  %s: %s", labels.Region, region, labels.Group, group), "")

	if m.mode == modePanel {
		lines = append(lines, m.panel.View())
	} else {
		lines = append(lines, m.renderTable(st)...)
	}

	lines = append(lines, "", faintStyle.Render(m.statusLine()))
	return strings.Join(lines, "\n")
}

func (m Model) statusLine() string {
	if m.status == "" {
		return keyHelp
	}
	return m.status + " · " + keyHelp
}

func (m Model) renderTable(st app.State) []string {
	header := []string{"", ""}
	for _, c := range columns {
		header = append(header, printers.Header(c, st.Labels, st.Query))
	}
	header = append(header, st.Labels.DropRate)

	cells := make([][]string, 0, len(st.Rows))
	for i, r := range st.Rows {
		marker, check := " ", "[ ]"
		if i == m.cursor {
			marker = "›"
		}
		if r.Selected {
			check = "[x]"
		}
		cells = append(cells, []string{
			marker, check,
			fmt.Sprint(r.ID), r.Name, card.FormatPoint(r.Point),
			r.Group.String(), r.Region.String(), r.DropRate,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := []string{headerStyle.Render(joinCells(header, widths))}
	if len(cells) == 0 {
		return append(lines, faintStyle.Render(" none"))
	}

	h := m.tableHeight()
	offset := min(m.offset, max(len(cells)-h, 0))
	end := min(offset+h, len(cells))
	for i := offset; i < end; i++ {
		line := joinCells(cells[i], widths)
		if st.Rows[i].Selected {
			line = pickedStyle.Render(line)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.TrimRight(strings.Join(padded, " "), " ")
}

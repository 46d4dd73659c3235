package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/cardfuse/pkg/app"
)

// panelModel renders the help or details overlay inside a bordered viewport.
type panelModel struct {
	viewport viewport.Model
	width    int
	height   int
	wrap     int

	kind     app.Panel
	title    string
	markdown string
	lines    []string

	frame lipgloss.Style
	err   error
}

func newPanel(width, height int) *panelModel {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	p := &panelModel{
		viewport: vp,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
	p.SetSize(width, height)
	return p
}

// ShowHelp replaces the content with rendered markdown.
func (p *panelModel) ShowHelp(title, md string) {
	p.kind = app.PanelHelp
	p.title = title
	p.markdown = md
	p.lines = nil
	p.render()
}

// ShowDetails replaces the content with plain lines, wrapped to the panel.
func (p *panelModel) ShowDetails(title string, lines []string) {
	p.kind = app.PanelDetails
	p.title = title
	p.markdown = ""
	p.lines = lines
	p.render()
}

func (p *panelModel) Kind() app.Panel { return p.kind }

func (p *panelModel) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := p.viewport.Update(msg)
	p.viewport = vp
	return cmd
}

func (p *panelModel) View() string {
	body := p.viewport.View()
	if body == "" && p.err != nil {
		body = "panel unavailable: " + p.err.Error()
	}
	title := lipgloss.NewStyle().Bold(true).Render(p.title)
	return p.frame.Width(p.width).Render(title + "\n\n" + body)
}

func (p *panelModel) SetSize(width, height int) {
	minWidth, minHeight := 32, 8
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if p.width == width && p.height == height {
		return
	}
	p.width = width
	p.height = height

	// two extra lines for the title and the blank line under it
	innerWidth := max(width-p.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-p.frame.GetVerticalFrameSize()-2, 1)
	p.wrap = innerWidth
	p.viewport.SetWidth(innerWidth)
	p.viewport.SetHeight(innerHeight)
	p.render()
}

func (p *panelModel) render() {
	wrap := max(p.wrap, 10)
	var content string
	switch p.kind {
	case app.PanelHelp:
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			p.fail(err)
			return
		}
		out, err := renderer.Render(strings.TrimSpace(p.markdown))
		if err != nil {
			p.fail(err)
			return
		}
		content = strings.Trim(stripANSI(out), "\n")
	case app.PanelDetails:
		wrapped := make([]string, 0, len(p.lines))
		for _, l := range p.lines {
			wrapped = append(wrapped, wordwrap.String(l, wrap))
		}
		content = strings.Join(wrapped, "\n")
	}
	p.err = nil
	p.viewport.SetContent(content)
	p.viewport.SetYOffset(0)
}

func (p *panelModel) fail(err error) {
	p.err = err
	p.viewport.SetContent("panel unavailable: " + err.Error())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

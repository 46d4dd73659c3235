package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/view"
)

// PrettyPrint writes colored, human oriented output.
type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Header is the localized column title, with the sort indicator when q sorts
// by c.
func Header(c view.Column, labels i18n.Labels, q view.Query) string {
	var title string
	switch c {
	case view.ColumnID:
		title = labels.ID
	case view.ColumnName:
		title = labels.Name
	case view.ColumnPoint:
		title = labels.Points
	case view.ColumnGroup:
		title = labels.Group
	case view.ColumnRegion:
		title = labels.Region
	default:
		title = string(c)
	}
	if q.Sort == c && c != view.ColumnNone {
		title += " " + q.Direction.Indicator()
	}
	return title
}

// Table prints the rows in catalog column order.
func (pp *PrettyPrint) Table(rows []view.Row, labels i18n.Labels, q view.Query) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	picked := color.New(color.FgHiGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("",
		bold.Sprint(Header(view.ColumnID, labels, q)),
		bold.Sprint(Header(view.ColumnName, labels, q)),
		bold.Sprint(Header(view.ColumnPoint, labels, q)),
		bold.Sprint(Header(view.ColumnGroup, labels, q)),
		bold.Sprint(Header(view.ColumnRegion, labels, q)),
		bold.Sprint(labels.DropRate),
	)
	for _, r := range rows {
		mark := "[ ]"
		name := r.Name
		if r.Selected {
			mark = picked.Sprint("[x]")
			name = picked.Sprint(name)
		}
		tbl.AddRow(mark, r.ID, name, card.FormatPoint(r.Point), r.Group.String(), r.Region.String(), r.DropRate)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Summary prints the localized summary line.
func (pp *PrettyPrint) Summary(text string) {
	c := color.New(color.FgHiYellow)
	_, _ = c.Fprintln(pp.out(), text)
}

// Details prints the details panel content.
func (pp *PrettyPrint) Details(title string, d app.DetailsView) {
	pp.Title(title)
	if len(d.Items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), d.Message)
		return
	}
	name := color.New(color.Bold)
	line := color.New(color.Faint)
	for _, it := range d.Items {
		_, _ = name.Fprintln(pp.out(), it.Card.Name)
		_, _ = line.Fprintln(pp.out(), "  "+it.Line)
	}
}

// Markdown renders md for the terminal. Width 0 keeps glamour's default.
func (pp *PrettyPrint) Markdown(md string, width int) error {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if color.NoColor {
		opts = []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(pp.out(), strings.TrimLeft(out, "\n"))
	return err
}

// Package help renders the localized usage guide.
package help

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/printers"
)

type Help struct {
	Session *app.Session
	// Raw prints the markdown source instead of rendering it.
	Raw   bool
	Width int
	Out   io.Writer
}

func (h *Help) Do(ctx context.Context) error {
	if h.Session == nil {
		return errors.New("can not show help, no session")
	}
	out := h.Out
	if out == nil {
		out = color.Output
	}

	h.Session.ShowHelp()
	defer func() { _ = h.Session.Dismiss(app.PanelHelp) }()
	md, err := h.Session.Help()
	if err != nil {
		return err
	}
	if h.Raw {
		_, err = fmt.Fprintln(out, md)
		return err
	}
	pp := printers.PrettyPrint{Out: out}
	return pp.Markdown(md, h.Width)
}

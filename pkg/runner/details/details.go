// Package details prints the selected cards.
package details

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/printers"
)

type Details struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (d *Details) Do(ctx context.Context) error {
	if d.Session == nil {
		return errors.New("can not show details, no session")
	}
	out := d.Out
	if out == nil {
		out = color.Output
	}

	d.Session.ShowDetails()
	defer func() { _ = d.Session.Dismiss(app.PanelDetails) }()
	dv := d.Session.Details()

	if d.JSON {
		b, err := json.Marshal(dv)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Details(d.Session.Labels().Details, dv)
	return nil
}

// Package summary prints the fusion summary of the persisted selection.
package summary

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

type Summary struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (s *Summary) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not summarize, no session")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	if s.JSON {
		b, err := json.Marshal(struct {
			Summary any    `json:"summary"`
			Text    string `json:"text"`
		}{s.Session.Summary(), s.Session.SummaryText()})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Summary(s.Session.SummaryText())
	return nil
}

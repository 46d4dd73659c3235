// Package selection runs the selection actions from the command line.
package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/cardfuse/pkg/app"
)

// Action names a selection mutation.
type Action string

const (
	Toggle  Action = "toggle"
	All     Action = "all"
	Reverse Action = "reverse"
	Reset   Action = "reset"
)

type Selection struct {
	Session *app.Session
	Action  Action
	// IDs are the cards to toggle, in order.
	IDs  []int
	JSON bool
	Out  io.Writer
}

type result struct {
	Action   Action `json:"action"`
	Selected []int  `json:"selected"`
	Summary  string `json:"summary"`
}

func (s *Selection) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not change selection, no session")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	switch s.Action {
	case Toggle:
		if len(s.IDs) == 0 {
			return errors.New("toggle needs at least one card id")
		}
		for _, id := range s.IDs {
			if _, ok := s.Session.Catalog().Lookup(id); !ok {
				return fmt.Errorf("unknown card id %d", id)
			}
		}
		for _, id := range s.IDs {
			if _, err := s.Session.Toggle(id); err != nil {
				return err
			}
		}
	case All:
		if err := s.Session.SelectAll(); err != nil {
			return err
		}
	case Reverse:
		if err := s.Session.Reverse(); err != nil {
			return err
		}
	case Reset:
		if err := s.Session.Reset(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown selection action %q", s.Action)
	}

	res := result{
		Action:   s.Action,
		Selected: s.Session.Selected(),
		Summary:  s.Session.SummaryText(),
	}
	if s.JSON {
		b, err := json.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)
	_, _ = f.Fprintf(out, "%s %d\n", s.Session.Labels().Selected, len(res.Selected))
	_, _ = y.Fprintln(out, res.Summary)
	return nil
}

// Package list prints the filtered, sorted card table.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/printers"
	"tableflip.dev/cardfuse/pkg/view"
)

type List struct {
	Session *app.Session
	Query   view.Query
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Session == nil {
		return errors.New("can not list, no session")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	l.Session.SetQuery(l.Query)
	st := l.Session.State()

	if l.JSON {
		b, err := json.Marshal(st)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	if st.Fallback {
		_, _ = fmt.Fprintln(out, l.Session.Messages().Fallback)
	}
	pp.Summary(st.SummaryText)
	pp.NewLine()
	pp.Table(st.Rows, st.Labels, st.Query)
	return nil
}

// ParseQuery builds a query from flag values.
func ParseQuery(search, region, group, sortBy string, desc bool) (view.Query, error) {
	q := view.Default()
	q.Search = search
	q.Region = card.Region(region)
	q.Group = card.Group(group)
	c, err := view.ParseColumn(sortBy)
	if err != nil {
		return q, err
	}
	q.Sort = c
	if c != view.ColumnNone && desc {
		q.Direction = view.Desc
	}
	return q, nil
}

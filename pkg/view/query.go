// Package view turns the catalog, the selection and the current query into
// the ordered rows shown to the user.
package view

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/cardfuse/pkg/card"
)

// ErrUnknownColumn is returned when a column name does not match any
// sortable column.
var ErrUnknownColumn = errors.New("view: unknown column")

// Column is a sortable table column.
type Column string

const (
	// ColumnNone means the view keeps catalog order.
	ColumnNone   Column = ""
	ColumnName   Column = "name"
	ColumnPoint  Column = "point"
	ColumnGroup  Column = "group"
	ColumnRegion Column = "region"
	ColumnID     Column = "id"
)

// Columns lists the sortable columns in table order.
func Columns() []Column {
	return []Column{ColumnName, ColumnPoint, ColumnGroup, ColumnRegion, ColumnID}
}

// ParseColumn resolves a column name. The empty string yields ColumnNone.
func ParseColumn(raw string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(raw)))
	if c == ColumnNone {
		return ColumnNone, nil
	}
	switch c {
	case "no", "no.", "number":
		return ColumnID, nil
	case "points":
		return ColumnPoint, nil
	}
	for _, candidate := range Columns() {
		if candidate == c {
			return c, nil
		}
	}
	return ColumnNone, fmt.Errorf("%w %q", ErrUnknownColumn, raw)
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Indicator is the header marker for the direction.
func (d Direction) Indicator() string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// Query is the transient search, filter and sort state. The zero value is the
// default: no search, no filters, catalog order.
type Query struct {
	Search    string      `json:"search,omitempty"`
	Region    card.Region `json:"region,omitempty"`
	Group     card.Group  `json:"group,omitempty"`
	Sort      Column      `json:"sort,omitempty"`
	Direction Direction   `json:"direction,omitempty"`
}

// Default returns the reset query.
func Default() Query {
	return Query{Direction: Asc}
}

// SortBy applies a header click: the same column again flips the direction,
// a different column sorts ascending.
func (q Query) SortBy(c Column) Query {
	if c != ColumnNone && q.Sort == c {
		q.Direction = q.direction().Flip()
		return q
	}
	q.Sort = c
	q.Direction = Asc
	return q
}

func (q Query) direction() Direction {
	if q.Direction == Desc {
		return Desc
	}
	return Asc
}

// Matches reports whether c passes the search and both filters.
func (q Query) Matches(c card.Card) bool {
	if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Search)) {
		return false
	}
	if q.Region != "" && c.Region != q.Region {
		return false
	}
	if q.Group != "" && !c.Group.Equal(q.Group) {
		return false
	}
	return true
}

package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/selection"
)

// Row is a card ready for display.
type Row struct {
	card.Card
	Selected bool `json:"selected"`
}

// Pipeline computes views. Lang picks the collation used for text columns.
type Pipeline struct {
	Lang language.Tag
}

// Compute runs the default pipeline.
func Compute(cards []card.Card, sel *selection.Set, q Query) []Row {
	return Pipeline{}.Compute(cards, sel, q)
}

// Compute filters cards by q, sorts them when q names a column, and marks the
// rows present in sel. It has no side effects on its inputs.
func (p Pipeline) Compute(cards []card.Card, sel *selection.Set, q Query) []Row {
	list := make([]card.Card, 0, len(cards))
	for _, c := range cards {
		if q.Matches(c) {
			list = append(list, c)
		}
	}

	if q.Sort != ColumnNone {
		cmp := p.comparator(q.Sort)
		sign := 1
		if q.direction() == Desc {
			sign = -1
		}
		sort.SliceStable(list, func(i, j int) bool {
			return sign*cmp(list[i], list[j]) < 0
		})
	}

	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, Row{Card: c, Selected: sel.Has(c.ID)})
	}
	return rows
}

func (p Pipeline) comparator(c Column) func(a, b card.Card) int {
	col := collate.New(p.Lang, collate.IgnoreCase)
	text := func(a, b string) int {
		return col.CompareString(strings.ToLower(a), strings.ToLower(b))
	}
	switch c {
	case ColumnPoint:
		return func(a, b card.Card) int { return numeric(a.Point, b.Point) }
	case ColumnID:
		return func(a, b card.Card) int { return numeric(float64(a.ID), float64(b.ID)) }
	case ColumnGroup:
		return func(a, b card.Card) int {
			an, aok := a.Group.Number()
			bn, bok := b.Group.Number()
			if aok && bok {
				return numeric(an, bn)
			}
			return text(a.Group.String(), b.Group.String())
		}
	case ColumnRegion:
		return func(a, b card.Card) int { return text(a.Region.String(), b.Region.String()) }
	case ColumnName:
		return func(a, b card.Card) int { return text(a.Name, b.Name) }
	default:
		return func(card.Card, card.Card) int { return 0 }
	}
}

func numeric(a, b float64) int {
	switch d := a - b; {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// Package summary derives the aggregate line shown above the table.
package summary

import (
	"fmt"
	"math"

	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/selection"
)

// MaxPoints is the highest attainable point total; the success rate is the
// selected total as a percentage of it.
const MaxPoints = 500

// Lookup resolves a card id against the catalog.
type Lookup interface {
	Lookup(id int) (card.Card, bool)
}

// Summary aggregates the current selection. GroupCount is the number of
// selected cards found in the catalog, one per card.
type Summary struct {
	GroupCount  int     `json:"groupCount"`
	TotalPoints float64 `json:"totalPoints"`
	Rate        float64 `json:"rate"`
}

// Compute sums the selected cards. Ids the catalog does not know are skipped.
func Compute(cards Lookup, sel *selection.Set) Summary {
	var s Summary
	for _, id := range sel.IDs() {
		c, ok := cards.Lookup(id)
		if !ok {
			continue
		}
		s.TotalPoints += c.Point
		s.GroupCount++
	}
	s.Rate = math.Round(s.TotalPoints/MaxPoints*100*10) / 10
	return s
}

// RateString formats the rate with one decimal place.
func (s Summary) RateString() string {
	return fmt.Sprintf("%.1f", s.Rate)
}

// Text renders "<group> n, <points> p, <rate> r%" with the locale's labels.
func (s Summary) Text(labels i18n.Labels) string {
	return fmt.Sprintf("%s %d, %s %s, %s %s%%",
		labels.Group, s.GroupCount,
		labels.Points, card.FormatPoint(s.TotalPoints),
		labels.Rate, s.RateString())
}

// Details returns the selected cards found in the catalog, ordered by id.
func Details(cards Lookup, sel *selection.Set) []card.Card {
	out := []card.Card{}
	for _, id := range sel.IDs() {
		if c, ok := cards.Lookup(id); ok {
			out = append(out, c)
		}
	}
	return out
}

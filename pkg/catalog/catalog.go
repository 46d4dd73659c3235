// Package catalog holds the read-only list of cards for a session and the
// sources it can be loaded from.
package catalog

import (
	"sort"

	"tableflip.dev/cardfuse/pkg/card"
)

// Store is the immutable catalog for a session. It is safe for concurrent
// reads; nothing mutates it after New.
type Store struct {
	cards    []card.Card
	byID     map[int]int
	source   string
	fallback bool
}

// New builds a Store over a copy of cards. When ids repeat, the first record
// wins lookups but every record is still listed.
func New(cards []card.Card) *Store {
	s := &Store{
		cards: append([]card.Card(nil), cards...),
		byID:  make(map[int]int, len(cards)),
	}
	for i, c := range s.cards {
		if _, ok := s.byID[c.ID]; !ok {
			s.byID[c.ID] = i
		}
	}
	return s
}

// Cards returns the catalog in source order. The slice is a copy.
func (s *Store) Cards() []card.Card {
	if s == nil {
		return nil
	}
	return append([]card.Card(nil), s.cards...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cards)
}

// Lookup finds a card by id.
func (s *Store) Lookup(id int) (card.Card, bool) {
	if s == nil {
		return card.Card{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return card.Card{}, false
	}
	return s.cards[i], true
}

// IDs returns every card id in source order.
func (s *Store) IDs() []int {
	if s == nil {
		return nil
	}
	ids := make([]int, 0, len(s.cards))
	for _, c := range s.cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// Regions lists the distinct regions in the catalog, sorted.
func (s *Store) Regions() []card.Region {
	seen := map[card.Region]struct{}{}
	out := []card.Region{}
	for _, c := range s.Cards() {
		if c.Region == "" {
			continue
		}
		if _, ok := seen[c.Region]; ok {
			continue
		}
		seen[c.Region] = struct{}{}
		out = append(out, c.Region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Groups lists the distinct groups in the catalog. Numeric groups sort by
// value ahead of named ones.
func (s *Store) Groups() []card.Group {
	out := []card.Group{}
	for _, c := range s.Cards() {
		if c.Group == "" {
			continue
		}
		dup := false
		for _, g := range out {
			if g.Equal(c.Group) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c.Group)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i].Number()
		b, bok := out[j].Number()
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Source describes where the catalog came from.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Fallback reports whether the store holds the built-in sample data because
// the configured source failed.
func (s *Store) Fallback() bool {
	return s != nil && s.fallback
}

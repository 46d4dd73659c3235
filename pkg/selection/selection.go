// Package selection implements the set of card ids the user has picked.
package selection

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Set is an unordered set of card ids. The zero value is an empty set ready
// for use; Set is not safe for concurrent mutation.
type Set struct {
	ids map[int]struct{}
}

// New returns a set holding ids.
func New(ids ...int) *Set {
	s := &Set{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is selected.
func (s *Set) Has(id int) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Add selects id.
func (s *Set) Add(id int) {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove deselects id.
func (s *Set) Remove(id int) {
	delete(s.ids, id)
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Set) Toggle(id int) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// SelectAll adds every id in ids.
func (s *Set) SelectAll(ids []int) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Reverse flips membership of every id in ids. Selected ids outside ids are
// left alone.
func (s *Set) Reverse(ids []int) {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.Toggle(id)
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ids = nil
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Set) IDs() []int {
	if s == nil {
		return []int{}
	}
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return New(s.IDs()...)
}

// Equal reports whether both sets hold the same ids.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.IDs() {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	return fmt.Sprint(s.IDs())
}

// MarshalJSON encodes the set as a JSON array of ids.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON replaces the set with the ids of a JSON array.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	s.Clear()
	s.SelectAll(ids)
	return nil
}

// Package card defines the catalog record shown in the viewer.
package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Card is an immutable catalog record. Cards are owned by the catalog for the
// whole session and are never mutated after load.
type Card struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Point    float64 `json:"point" yaml:"point"`
	Group    Group   `json:"group" yaml:"group"`
	Region   Region  `json:"region" yaml:"region"`
	DropRate string  `json:"dropRate,omitempty" yaml:"dropRate,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("#%d %s", c.ID, c.Name)
}

// Region identifies where a card drops.
type Region string

func (r Region) String() string {
	return string(r)
}

// Group identifies the fusion group of a card. Catalog sources write groups
// either as numbers or as strings; both decode to the same Group so "1" and 1
// compare equal.
type Group string

func (g Group) String() string {
	return string(g)
}

// Number reports the numeric value of the group, if it has one.
func (g Group) Number() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(g)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Equal compares groups by value: numeric groups match regardless of how the
// number was written.
func (g Group) Equal(other Group) bool {
	if a, ok := g.Number(); ok {
		if b, ok := other.Number(); ok {
			return a == b
		}
	}
	return strings.TrimSpace(string(g)) == strings.TrimSpace(string(other))
}

// UnmarshalJSON accepts a JSON number or string.
func (g *Group) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Group(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("card: group must be a number or string: %w", err)
	}
	*g = Group(n.String())
	return nil
}

// MarshalJSON writes numeric groups back as numbers.
func (g Group) MarshalJSON() ([]byte, error) {
	if _, ok := g.Number(); ok {
		return []byte(strings.TrimSpace(string(g))), nil
	}
	return json.Marshal(string(g))
}

// FormatPoint renders a point value the way it is written in the catalog,
// without trailing zeros.
func FormatPoint(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

package card

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	ErrEmptyCategory = errors.New("card category has no members")
	ErrDuplicateName = errors.New("duplicate card name")
)

// Deck holds the static card definitions of a game: one name table per category.
type Deck struct {
	names  [3][]string
	byName map[string]Card
}

// NewDeck builds a deck from the three name lists. Every category must be
// non-empty and every name unique across the whole deck (case-insensitive).
func NewDeck(suspects, weapons, rooms []string) (*Deck, error) {
	d := &Deck{byName: make(map[string]Card)}
	for _, cat := range Categories {
		list := [][]string{suspects, weapons, rooms}[cat]
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: %w", cat, ErrEmptyCategory)
		}
		d.names[cat] = append([]string(nil), list...)
		for i, name := range list {
			key := strings.ToLower(strings.TrimSpace(name))
			if _, exists := d.byName[key]; exists {
				return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
			}
			d.byName[key] = Card{Category: cat, Index: i}
		}
	}
	return d, nil
}

// Size returns the number of members of a category.
func (d *Deck) Size(cat Category) int { return len(d.names[cat]) }

// Names returns the name table for a category.
func (d *Deck) Names(cat Category) []string {
	return append([]string(nil), d.names[cat]...)
}

func (d *Deck) Suspects() []Suspect { return members[Suspect](d.Size(CategorySuspect)) }
func (d *Deck) Weapons() []Weapon   { return members[Weapon](d.Size(CategoryWeapon)) }
func (d *Deck) Rooms() []Room       { return members[Room](d.Size(CategoryRoom)) }

// Cards returns the full deck: all suspects, then weapons, then rooms.
func (d *Deck) Cards() []Card {
	var all []Card
	for _, cat := range Categories {
		for i := range d.names[cat] {
			all = append(all, Card{Category: cat, Index: i})
		}
	}
	return all
}

// Name returns the display name of a card.
func (d *Deck) Name(c Card) string {
	if c.Index < 0 || c.Index >= len(d.names[c.Category]) {
		return fmt.Sprintf("<%s #%d>", c.Category, c.Index)
	}
	return d.names[c.Category][c.Index]
}

// Lookup finds a card by name, ignoring case and surrounding spaces.
func (d *Deck) Lookup(name string) (Card, bool) {
	c, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Describe renders a guess as "suggest(Scarlett, Rope, Kitchen)".
func (d *Deck) Describe(g Guess) string {
	return fmt.Sprintf("%s(%s)", g.Kind, d.DescribeTriple(g.Triple()))
}

func (d *Deck) DescribeTriple(s Solution) string {
	var parts []string
	for _, c := range s.Cards() {
		parts = append(parts, d.Name(c))
	}
	return strings.Join(parts, ", ")
}

func members[T ~int](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i)
	}
	return out
}

// Without returns the members of all that are not in drop, preserving order.
func Without[T comparable](all []T, drop ...T) []T {
	out := make([]T, 0, len(all))
	for _, m := range all {
		keep := true
		for _, d := range drop {
			if m == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out
}

// Shuffle permutes xs in place using rng.
func Shuffle[T any](rng *rand.Rand, xs []T) {
	rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}

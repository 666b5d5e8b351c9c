// Package deck loads YAML deck lists and resolves them against a card
// library into the three piles a duel starts from.
package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duelverse/duelfield/internal/card"
)

// File represents the top-level YAML structure of a deck list.
type File struct {
	Name  string  `yaml:"name"`
	Main  []Entry `yaml:"main"`
	Extra []Entry `yaml:"extra"`
	Side  []Entry `yaml:"side"`
}

// Entry represents a card and its count in a deck section.
type Entry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Slot is a resolved definition with its copy count.
type Slot struct {
	Def   *card.Definition
	Count int
}

// List is a fully resolved deck: every entry bound to a definition.
type List struct {
	Name  string
	Main  []Slot
	Extra []Slot
	Side  []Slot
}

// Load parses a YAML deck file and resolves every entry against the
// library. Unknown card names and non-positive counts are errors:
// a deck that cannot be fully resolved never produces a partial list.
func Load(path string, lib *card.Library) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df File
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return Resolve(&df, lib)
}

// Resolve binds a parsed deck file to library definitions.
func Resolve(df *File, lib *card.Library) (*List, error) {
	list := &List{Name: df.Name}
	sections := []struct {
		name    string
		entries []Entry
		out     *[]Slot
	}{
		{"main", df.Main, &list.Main},
		{"extra", df.Extra, &list.Extra},
		{"side", df.Side, &list.Side},
	}
	for _, s := range sections {
		for _, e := range s.entries {
			if e.Count <= 0 {
				return nil, fmt.Errorf("deck %q: %s entry %q has count %d", df.Name, s.name, e.Name, e.Count)
			}
			def := lib.ByName(e.Name)
			if def == nil {
				return nil, fmt.Errorf("deck %q: unknown card %q in %s deck", df.Name, e.Name, s.name)
			}
			*s.out = append(*s.out, Slot{Def: def, Count: e.Count})
		}
	}
	return list, nil
}

// MainSize returns the total number of cards in the main deck.
func (l *List) MainSize() int { return sectionSize(l.Main) }

// ExtraSize returns the total number of cards in the extra deck.
func (l *List) ExtraSize() int { return sectionSize(l.Extra) }

// SideSize returns the total number of cards in the side deck.
func (l *List) SideSize() int { return sectionSize(l.Side) }

func sectionSize(slots []Slot) int {
	n := 0
	for _, s := range slots {
		n += s.Count
	}
	return n
}

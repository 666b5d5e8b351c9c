package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Library is an indexed collection of card definitions loaded from a
// YAML card file. Lookups are by exact name or numeric ID.
type Library struct {
	Cards []*Definition `yaml:"cards"`

	byName map[string]*Definition
	byID   map[int]*Definition
}

// LoadLibrary reads a YAML card file and builds the lookup indexes.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card library: %w", err)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing card library: %w", err)
	}
	if err := lib.index(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// NewLibrary builds a library from in-memory definitions.
func NewLibrary(defs []*Definition) (*Library, error) {
	lib := &Library{Cards: defs}
	if err := lib.index(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) index() error {
	l.byName = make(map[string]*Definition, len(l.Cards))
	l.byID = make(map[int]*Definition, len(l.Cards))
	for _, d := range l.Cards {
		if d.Name == "" {
			return fmt.Errorf("card library: definition with empty name (id %d)", d.ID)
		}
		if _, ok := l.byName[d.Name]; ok {
			return fmt.Errorf("card library: duplicate name %q", d.Name)
		}
		l.byName[d.Name] = d
		if d.ID != 0 {
			l.byID[d.ID] = d
		}
	}
	return nil
}

// ByName returns the definition with the given name, or nil.
func (l *Library) ByName(name string) *Definition {
	return l.byName[name]
}

// ByID returns the definition with the given ID, or nil.
func (l *Library) ByID(id int) *Definition {
	return l.byID[id]
}

// Len returns the number of definitions in the library.
func (l *Library) Len() int { return len(l.Cards) }

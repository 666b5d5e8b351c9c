package field

import (
	"github.com/google/uuid"

	"github.com/duelverse/duelfield/internal/card"
)

// Position is a card's battle orientation in a monster slot.
type Position int

const (
	Attack Position = iota
	Defense
)

func (p Position) String() string {
	if p == Defense {
		return "defense"
	}
	return "attack"
}

// CardInstance is one physical copy of a card in play. Two copies of
// the same definition are distinct instances with distinct IDs.
type CardInstance struct {
	ID        string
	Def       *card.Definition
	FaceDown  bool
	Position  Position
	Materials []*CardInstance // attached overlay materials, oldest first
}

// NewInstance mints a fresh instance for a definition.
func NewInstance(def *card.Definition) *CardInstance {
	return &CardInstance{ID: uuid.NewString(), Def: def}
}

// Name returns the underlying card's name.
func (i *CardInstance) Name() string { return i.Def.Name }

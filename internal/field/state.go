package field

import (
	"fmt"
	"math/rand"

	"github.com/duelverse/duelfield/internal/deck"
)

// State is one player's full side of the field. All mutation goes
// through the operation methods; a rejected operation leaves the
// state untouched.
type State struct {
	slots  [NumSlots]*CardInstance
	piles  [NumZones - NumSlots][]*CardInstance
	guards detachGuards
}

func pileIndex(z ZoneID) int {
	if !z.IsPile() {
		panic(fmt.Sprintf("field: %v is not a pile", z))
	}
	return int(z) - NumSlots
}

// NewState expands a resolved deck list into a fresh side of the
// field: main deck shuffled, extra and side decks in list order,
// everything else empty. Each copy gets its own instance.
func NewState(list *deck.List) *State {
	s := &State{}
	expand := func(slots []deck.Slot, zone ZoneID) {
		for _, sl := range slots {
			for i := 0; i < sl.Count; i++ {
				s.push(zone, NewInstance(sl.Def))
			}
		}
	}
	expand(list.Main, ZoneDeck)
	expand(list.Extra, ZoneExtraDeck)
	expand(list.Side, ZoneSideDeck)
	s.ShufflePile(ZoneDeck)
	return s
}

// Slot returns the card in a slot zone, or nil when empty.
func (s *State) Slot(z ZoneID) *CardInstance {
	if !z.IsSlot() {
		panic(fmt.Sprintf("field: %v is not a slot", z))
	}
	return s.slots[z]
}

// Pile returns the cards in a pile zone. Callers must not mutate the
// returned slice.
func (s *State) Pile(z ZoneID) []*CardInstance {
	return s.piles[pileIndex(z)]
}

// PileSize returns the number of cards in a pile zone.
func (s *State) PileSize(z ZoneID) int {
	return len(s.piles[pileIndex(z)])
}

// push appends an instance to the top of a pile.
func (s *State) push(z ZoneID, inst *CardInstance) {
	i := pileIndex(z)
	s.piles[i] = append(s.piles[i], inst)
}

// insert places an instance at a specific pile index.
func (s *State) insert(z ZoneID, at int, inst *CardInstance) {
	i := pileIndex(z)
	p := s.piles[i]
	if at < 0 {
		at = 0
	}
	if at > len(p) {
		at = len(p)
	}
	p = append(p, nil)
	copy(p[at+1:], p[at:])
	p[at] = inst
	s.piles[i] = p
}

// removeAt removes and returns the instance at a pile index.
func (s *State) removeAt(z ZoneID, at int) *CardInstance {
	i := pileIndex(z)
	p := s.piles[i]
	inst := p[at]
	s.piles[i] = append(p[:at], p[at+1:]...)
	return inst
}

// FindInstance locates an instance by ID anywhere on this side,
// including attached materials. The third result is the index within
// the pile (or the material list), -1 for slot occupants.
func (s *State) FindInstance(id string) (*CardInstance, ZoneID, int) {
	for _, z := range Slots() {
		if c := s.slots[z]; c != nil {
			if c.ID == id {
				return c, z, -1
			}
			for mi, m := range c.Materials {
				if m.ID == id {
					return m, z, mi
				}
			}
		}
	}
	for z := ZoneDeck; z <= ZoneHand; z++ {
		for pi, c := range s.Pile(z) {
			if c.ID == id {
				return c, z, pi
			}
		}
	}
	return nil, 0, -1
}

// detach removes an instance from wherever it currently sits.
// Single-ownership invariant: an instance lives in exactly one place,
// so failing to find it is a programming error.
func (s *State) detach(inst *CardInstance) ZoneID {
	for _, z := range Slots() {
		if s.slots[z] == inst {
			s.slots[z] = nil
			return z
		}
		if host := s.slots[z]; host != nil {
			for mi, m := range host.Materials {
				if m == inst {
					host.Materials = append(host.Materials[:mi], host.Materials[mi+1:]...)
					return z
				}
			}
		}
	}
	for z := ZoneDeck; z <= ZoneHand; z++ {
		for pi, c := range s.Pile(z) {
			if c == inst {
				s.removeAt(z, pi)
				return z
			}
		}
	}
	panic(fmt.Sprintf("field: instance %s (%s) not on field", inst.ID, inst.Name()))
}

// TotalCount returns the number of instances on this side, counting
// attached materials. Movement operations conserve this number except
// where a card deliberately leaves play.
func (s *State) TotalCount() int {
	n := 0
	for _, z := range Slots() {
		if c := s.slots[z]; c != nil {
			n += 1 + len(c.Materials)
		}
	}
	for z := ZoneDeck; z <= ZoneHand; z++ {
		n += s.PileSize(z)
	}
	return n
}

// ShufflePile randomizes a pile in place. Piles with fewer than two
// cards are left untouched.
func (s *State) ShufflePile(z ZoneID) {
	p := s.piles[pileIndex(z)]
	if len(p) < 2 {
		return
	}
	rand.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
}

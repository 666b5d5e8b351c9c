package field

import (
	"math/rand"
	"sync"
)

// MoveOptions adjusts a generic Move. Nil pointer fields leave the
// corresponding instance state untouched.
type MoveOptions struct {
	FaceDown  *bool
	Position  *Position
	ShuffleIn bool // insert at a random pile index instead of the top
}

// detachGuards suppresses duplicate detach requests for a host while
// one is still in flight. Scoped per State; cleared when the mutation
// commits.
type detachGuards struct {
	mu      sync.Mutex
	pending map[string]bool
}

func (g *detachGuards) acquire(hostID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		g.pending = make(map[string]bool)
	}
	if g.pending[hostID] {
		return false
	}
	g.pending[hostID] = true
	return true
}

func (g *detachGuards) release(hostID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, hostID)
}

// Draw removes up to n cards from the deck at uniformly random
// positions and appends them to the hand. Drawing past an empty deck
// draws what is available and never errors.
func (s *State) Draw(n int) []*CardInstance {
	var drawn []*CardInstance
	for i := 0; i < n; i++ {
		size := s.PileSize(ZoneDeck)
		if size == 0 {
			break
		}
		inst := s.removeAt(ZoneDeck, rand.Intn(size))
		inst.FaceDown = false
		s.push(ZoneHand, inst)
		drawn = append(drawn, inst)
	}
	return drawn
}

// Place moves an instance into a target zone, setting its orientation
// and position. Placement legality is checked before any mutation;
// slot targets must be empty.
func (s *State) Place(id string, target ZoneID, faceDown bool, pos Position) error {
	inst, source, _ := s.FindInstance(id)
	if inst == nil {
		return ErrUnknownInstance
	}
	if !CanPlace(inst.Def, target, source) {
		return ErrIllegalPlacement
	}
	if target.IsSlot() && s.slots[target] != nil {
		return ErrOccupied
	}
	if inst.Def.IsLink() && pos == Defense {
		return ErrLinkPosition
	}

	s.detach(inst)
	inst.FaceDown = faceDown
	inst.Position = pos
	if target.IsSlot() {
		s.slots[target] = inst
	} else {
		s.push(target, inst)
	}
	return nil
}

// Move transfers an instance to any zone. When the instance leaves a
// slot, its attached materials are flushed to the graveyard first;
// materials never follow their host into a pile.
func (s *State) Move(id string, to ZoneID, opts MoveOptions) error {
	inst, from, _ := s.FindInstance(id)
	if inst == nil {
		return ErrUnknownInstance
	}
	if to.IsSlot() {
		if s.slots[to] != nil && s.slots[to] != inst {
			return ErrOccupied
		}
		if !CanPlace(inst.Def, to, from) {
			return ErrIllegalPlacement
		}
	}

	if from.IsSlot() && s.slots[from] == inst {
		s.flushMaterials(inst)
	}
	s.detach(inst)
	if opts.FaceDown != nil {
		inst.FaceDown = *opts.FaceDown
	}
	if opts.Position != nil {
		inst.Position = *opts.Position
	}
	if to.IsSlot() {
		s.slots[to] = inst
	} else if opts.ShuffleIn {
		s.insert(to, rand.Intn(s.PileSize(to)+1), inst)
	} else {
		s.push(to, inst)
	}
	return nil
}

// flushMaterials sends every attached material of a host to the
// graveyard.
func (s *State) flushMaterials(host *CardInstance) {
	for _, m := range host.Materials {
		m.FaceDown = false
		s.push(ZoneGraveyard, m)
	}
	host.Materials = nil
}

// AttachMaterial attaches an instance as overlay material to the
// occupant of hostZone. Only xyz monsters on the field host materials.
func (s *State) AttachMaterial(hostZone ZoneID, materialID string) error {
	if !hostZone.IsSlot() {
		return ErrIllegalPlacement
	}
	host := s.slots[hostZone]
	if host == nil {
		return ErrEmptySlot
	}
	if !host.Def.IsXYZ() {
		return ErrNotXYZHost
	}
	inst, _, _ := s.FindInstance(materialID)
	if inst == nil {
		return ErrUnknownInstance
	}
	if inst == host {
		return ErrIllegalPlacement
	}

	if inst.Materials != nil {
		s.flushMaterials(inst)
	}
	s.detach(inst)
	inst.FaceDown = false
	host.Materials = append(host.Materials, inst)
	return nil
}

// DetachMaterial removes one material by index from the host in
// hostZone and sends it to the graveyard. Duplicate requests for the
// same host while one is in flight are silently ignored, and the
// index is re-checked against current state immediately before the
// mutation: a stale index is a no-op, not an error.
func (s *State) DetachMaterial(hostZone ZoneID, index int) (*CardInstance, error) {
	if !hostZone.IsSlot() {
		return nil, ErrIllegalPlacement
	}
	host := s.slots[hostZone]
	if host == nil {
		return nil, ErrEmptySlot
	}
	if !s.guards.acquire(host.ID) {
		return nil, nil
	}
	defer s.guards.release(host.ID)

	if index < 0 || index >= len(host.Materials) {
		return nil, nil
	}
	m := host.Materials[index]
	host.Materials = append(host.Materials[:index], host.Materials[index+1:]...)
	m.FaceDown = false
	s.push(ZoneGraveyard, m)
	return m, nil
}

// TogglePosition flips the occupant of hostZone between attack and
// defense. Link monsters have no defense position.
func (s *State) TogglePosition(hostZone ZoneID) error {
	if !hostZone.IsSlot() {
		return ErrIllegalPlacement
	}
	inst := s.slots[hostZone]
	if inst == nil {
		return ErrEmptySlot
	}
	if inst.Def.IsLink() {
		return ErrLinkPosition
	}
	if inst.Position == Attack {
		inst.Position = Defense
	} else {
		inst.Position = Attack
	}
	return nil
}

// Flip sets the orientation of the occupant of hostZone in place.
func (s *State) Flip(hostZone ZoneID, faceDown bool) error {
	if !hostZone.IsSlot() {
		return ErrIllegalPlacement
	}
	inst := s.slots[hostZone]
	if inst == nil {
		return ErrEmptySlot
	}
	inst.FaceDown = faceDown
	return nil
}

// ReturnAllToDecks sweeps every slot and the hand, graveyard and
// banished piles back into the decks: extra-deck monsters to the
// extra deck, everything else to the main deck, which is then
// reshuffled. Attached materials are redistributed the same way.
// The side deck is untouched.
func (s *State) ReturnAllToDecks() {
	var swept []*CardInstance
	for _, z := range Slots() {
		if c := s.slots[z]; c != nil {
			swept = append(swept, c)
			swept = append(swept, c.Materials...)
			c.Materials = nil
			s.slots[z] = nil
		}
	}
	for _, z := range []ZoneID{ZoneHand, ZoneGraveyard, ZoneBanished} {
		swept = append(swept, s.Pile(z)...)
		s.piles[pileIndex(z)] = nil
	}
	for _, c := range swept {
		c.FaceDown = false
		c.Position = Attack
		if c.Def.IsExtraDeck() {
			s.push(ZoneExtraDeck, c)
		} else {
			s.push(ZoneDeck, c)
		}
	}
	s.ShufflePile(ZoneDeck)
}

// ReturnToDeckTop moves an instance to the top of its home deck.
func (s *State) ReturnToDeckTop(id string) error {
	return s.returnToDeck(id, true)
}

// ReturnToDeckBottom moves an instance to the bottom of its home deck.
func (s *State) ReturnToDeckBottom(id string) error {
	return s.returnToDeck(id, false)
}

func (s *State) returnToDeck(id string, top bool) error {
	inst, from, _ := s.FindInstance(id)
	if inst == nil {
		return ErrUnknownInstance
	}
	home := ZoneDeck
	if inst.Def.IsExtraDeck() {
		home = ZoneExtraDeck
	}
	if from.IsSlot() && s.slots[from] == inst {
		s.flushMaterials(inst)
	}
	s.detach(inst)
	inst.FaceDown = false
	if top {
		s.push(home, inst)
	} else {
		s.insert(home, 0, inst)
	}
	return nil
}

// SideDeckExchange atomically swaps selected main-deck cards with an
// equal number of side-deck cards, then reshuffles the main deck.
// Unequal or empty selections are rejected with no mutation.
func (s *State) SideDeckExchange(fromMain, fromSide []string) error {
	if len(fromMain) == 0 || len(fromMain) != len(fromSide) {
		return ErrSideDeckMismatch
	}
	mainIdx, err := s.pileIndexes(ZoneDeck, fromMain)
	if err != nil {
		return err
	}
	sideIdx, err := s.pileIndexes(ZoneSideDeck, fromSide)
	if err != nil {
		return err
	}

	outgoing := s.takeAt(ZoneDeck, mainIdx)
	incoming := s.takeAt(ZoneSideDeck, sideIdx)
	for _, c := range incoming {
		s.push(ZoneDeck, c)
	}
	for _, c := range outgoing {
		s.push(ZoneSideDeck, c)
	}
	s.ShufflePile(ZoneDeck)
	return nil
}

// pileIndexes resolves instance IDs to their indexes within one pile.
// Every ID must resolve before any mutation happens.
func (s *State) pileIndexes(z ZoneID, ids []string) ([]int, error) {
	pile := s.Pile(z)
	idx := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		found := -1
		for pi, c := range pile {
			if c.ID == id && !seen[pi] {
				found = pi
				break
			}
		}
		if found < 0 {
			return nil, ErrUnknownInstance
		}
		seen[found] = true
		idx = append(idx, found)
	}
	return idx, nil
}

// takeAt removes the instances at the given pile indexes, preserving
// the order of the remainder.
func (s *State) takeAt(z ZoneID, indexes []int) []*CardInstance {
	pile := s.Pile(z)
	take := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		take[i] = true
	}
	var taken, kept []*CardInstance
	for pi, c := range pile {
		if take[pi] {
			taken = append(taken, c)
		} else {
			kept = append(kept, c)
		}
	}
	s.piles[pileIndex(z)] = kept
	return taken
}

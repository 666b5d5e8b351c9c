// Package broadcast derives redacted field snapshots and moves them
// between the two clients of a duel over a pub/sub channel.
package broadcast

import (
	"github.com/duelverse/duelfield/internal/field"
)

// CardRef is the public identity of a face-up card.
type CardRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// SlotView is the opponent-facing view of one slot. A face-down
// occupant is published as an unknown card: occupied and oriented but
// with no identity.
type SlotView struct {
	Zone          string   `json:"zone"`
	Occupied      bool     `json:"occupied"`
	Known         bool     `json:"known"`
	Card          *CardRef `json:"card,omitempty"`
	FaceDown      bool     `json:"faceDown,omitempty"`
	Position      string   `json:"position,omitempty"`
	MaterialCount int      `json:"materialCount,omitempty"`
}

// Snapshot is the full redacted projection of one side of the field.
// Receivers treat every snapshot as a complete replacement, never a
// diff.
type Snapshot struct {
	DuelID         string     `json:"duelId"`
	Seat           int        `json:"seat"`
	Slots          []SlotView `json:"slots"`
	HandCount      int        `json:"handCount"`
	DeckCount      int        `json:"deckCount"`
	ExtraDeckCount int        `json:"extraDeckCount"`
	SideDeckCount  int        `json:"sideDeckCount"`
	Graveyard      []CardRef  `json:"graveyard"`
	Banished       []CardRef  `json:"banished"`
}

// Project computes the redacted snapshot of a field state. It is
// deterministic: the same state always yields the same snapshot, with
// slots in fixed zone order.
func Project(duelID string, seat int, s *field.State) Snapshot {
	snap := Snapshot{
		DuelID:         duelID,
		Seat:           seat,
		HandCount:      s.PileSize(field.ZoneHand),
		DeckCount:      s.PileSize(field.ZoneDeck),
		ExtraDeckCount: s.PileSize(field.ZoneExtraDeck),
		SideDeckCount:  s.PileSize(field.ZoneSideDeck),
		Graveyard:      projectPile(s, field.ZoneGraveyard),
		Banished:       projectPile(s, field.ZoneBanished),
	}
	for _, z := range field.Slots() {
		snap.Slots = append(snap.Slots, projectSlot(z, s.Slot(z)))
	}
	return snap
}

func projectSlot(z field.ZoneID, inst *field.CardInstance) SlotView {
	v := SlotView{Zone: z.String()}
	if inst == nil {
		return v
	}
	v.Occupied = true
	v.FaceDown = inst.FaceDown
	v.Position = inst.Position.String()
	v.MaterialCount = len(inst.Materials)
	if inst.FaceDown {
		// Never leak the identity of a face-down card.
		return v
	}
	v.Known = true
	v.Card = ref(inst)
	return v
}

// projectPile publishes full identities: graveyard and banished cards
// are face-up by convention.
func projectPile(s *field.State, z field.ZoneID) []CardRef {
	refs := make([]CardRef, 0, s.PileSize(z))
	for _, c := range s.Pile(z) {
		refs = append(refs, *ref(c))
	}
	return refs
}

func ref(inst *field.CardInstance) *CardRef {
	return &CardRef{ID: inst.Def.ID, Name: inst.Def.Name, Image: inst.Def.Image()}
}

package mcp

import (
	"github.com/duelverse/duelfield/internal/broadcast"
	"github.com/duelverse/duelfield/internal/duel"
	"github.com/duelverse/duelfield/internal/field"
)

// EventView is one journal entry as presented in tool responses.
type EventView struct {
	Type    string `json:"type"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase,omitempty"`
	Details string `json:"details"`
}

// CardView is the owner's (unredacted) view of one instance.
type CardView struct {
	InstanceID string `json:"instanceId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Level      int    `json:"level,omitempty"`
	ATK        int    `json:"atk,omitempty"`
	DEF        int    `json:"def,omitempty"`
	FaceDown   bool   `json:"faceDown,omitempty"`
	Position   string `json:"position,omitempty"`
	Materials  int    `json:"materials,omitempty"`
}

// SlotFieldView is one slot in the owner's field view.
type SlotFieldView struct {
	Zone string    `json:"zone"`
	Card *CardView `json:"card,omitempty"`
}

// FieldView is the owner's full view of their side plus turn state.
type FieldView struct {
	Turn           int             `json:"turn"`
	Phase          string          `json:"phase"`
	TurnPlayer     int             `json:"turnPlayer"`
	NormalSummoned bool            `json:"normalSummoned"`
	NormalSet      bool            `json:"normalSet"`
	Slots          []SlotFieldView `json:"slots"`
	Hand           []CardView      `json:"hand"`
	DeckCount      int             `json:"deckCount"`
	ExtraDeck      []CardView      `json:"extraDeck"`
	SideDeck       []CardView      `json:"sideDeck"`
	Graveyard      []CardView      `json:"graveyard"`
	Banished       []CardView      `json:"banished"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events       []EventView         `json:"events"`
	Field        *FieldView          `json:"field,omitempty"`
	OpponentView *broadcast.Snapshot `json:"opponentView,omitempty"`
	Drawn        []string            `json:"drawn,omitempty"`
}

func cardView(inst *field.CardInstance) *CardView {
	return &CardView{
		InstanceID: inst.ID,
		Name:       inst.Def.Name,
		Type:       inst.Def.Type,
		Level:      inst.Def.Level,
		ATK:        inst.Def.ATK,
		DEF:        inst.Def.DEF,
		FaceDown:   inst.FaceDown,
		Position:   inst.Position.String(),
		Materials:  len(inst.Materials),
	}
}

func pileViews(s *field.State, z field.ZoneID) []CardView {
	views := make([]CardView, 0, s.PileSize(z))
	for _, c := range s.Pile(z) {
		views = append(views, *cardView(c))
	}
	return views
}

// BuildFieldView captures the owner's complete side.
func BuildFieldView(sess *duel.Session) *FieldView {
	s := sess.Field
	t := sess.Turn
	v := &FieldView{
		Turn:           t.TurnCount,
		Phase:          t.Phase.String(),
		TurnPlayer:     t.TurnPlayer,
		NormalSummoned: t.Summons[sess.Seat()].HasNormalSummoned,
		NormalSet:      t.Summons[sess.Seat()].HasNormalSet,
		Hand:           pileViews(s, field.ZoneHand),
		DeckCount:      s.PileSize(field.ZoneDeck),
		ExtraDeck:      pileViews(s, field.ZoneExtraDeck),
		SideDeck:       pileViews(s, field.ZoneSideDeck),
		Graveyard:      pileViews(s, field.ZoneGraveyard),
		Banished:       pileViews(s, field.ZoneBanished),
	}
	for _, z := range field.Slots() {
		sv := SlotFieldView{Zone: z.String()}
		if c := s.Slot(z); c != nil {
			sv.Card = cardView(c)
		}
		v.Slots = append(v.Slots, sv)
	}
	return v
}

package duel

import (
	"github.com/duelverse/duelfield/internal/card"
	"github.com/duelverse/duelfield/internal/field"
)

// SummonState tracks one player's summon budget for the current turn.
type SummonState struct {
	HasNormalSummoned bool
	HasNormalSet      bool
	SummonCount       int
	CanSpecialSummon  bool // effect-granted tribute bypass
}

// Reset returns the state to its turn-start zero value.
func (s *SummonState) Reset() {
	*s = SummonState{}
}

// TurnState is the per-duel phase and turn-ownership machine. One
// instance per session; there is no process-wide turn state.
type TurnState struct {
	Phase      Phase
	TurnPlayer int // 0 or 1
	TurnCount  int // 1-based
	Summons    [2]SummonState
}

// NewTurnState starts at turn 1, player 0, draw phase.
func NewTurnState() *TurnState {
	return &TurnState{Phase: PhaseDraw, TurnPlayer: 0, TurnCount: 1}
}

// AdvancePhase steps to the next phase; wrapping past the end phase
// hands the turn over.
func (t *TurnState) AdvancePhase() {
	if t.Phase == PhaseEnd {
		t.NextTurn()
		return
	}
	t.Phase = t.Phase.Next()
}

// NextTurn hands the turn to the other player and resets only that
// player's summon state. The outgoing player keeps theirs until their
// own next turn starts.
func (t *TurnState) NextTurn() {
	t.TurnPlayer = 1 - t.TurnPlayer
	t.TurnCount++
	t.Phase = PhaseDraw
	t.Summons[t.TurnPlayer].Reset()
}

// CanNormalSummon reports whether the player may normal summon right
// now: their turn, a main phase, summon not yet used.
func (t *TurnState) CanNormalSummon(player int) bool {
	return t.TurnPlayer == player && t.Phase.IsMain() && !t.Summons[player].HasNormalSummoned
}

// CanNormalSet is the same gate keyed on the set flag.
func (t *TurnState) CanNormalSet(player int) bool {
	return t.TurnPlayer == player && t.Phase.IsMain() && !t.Summons[player].HasNormalSet
}

// RecordNormalSummon consumes the normal summon. Idempotent; callers
// gate with CanNormalSummon first.
func (t *TurnState) RecordNormalSummon(player int) {
	if !t.Summons[player].HasNormalSummoned {
		t.Summons[player].HasNormalSummoned = true
		t.Summons[player].SummonCount++
	}
}

// RecordNormalSet consumes the normal set.
func (t *TurnState) RecordNormalSet(player int) {
	if !t.Summons[player].HasNormalSet {
		t.Summons[player].HasNormalSet = true
		t.Summons[player].SummonCount++
	}
}

// RequiredTributes computes the tribute cost of normal summoning a
// monster: 0 below level 5, 1 for levels 5 and 6, 2 from level 7 up.
// Ritual monsters instead cost floor(level/2). A player whose
// CanSpecialSummon flag is set pays nothing.
func (t *TurnState) RequiredTributes(def *card.Definition, player int) int {
	if t.Summons[player].CanSpecialSummon {
		return 0
	}
	if def.IsRitual() {
		return def.Level / 2
	}
	switch {
	case def.Level < 5:
		return 0
	case def.Level < 7:
		return 1
	default:
		return 2
	}
}

// CanSpecialSummon reports whether a monster may be special summoned
// from its source zone: the acting player's turn, extra-deck monsters
// only from the extra deck, everything else from deck, graveyard,
// banished or hand.
func (t *TurnState) CanSpecialSummon(def *card.Definition, source field.ZoneID, player int) bool {
	if t.TurnPlayer != player {
		return false
	}
	if !def.IsMonster() {
		return false
	}
	if def.IsExtraDeck() {
		return source == field.ZoneExtraDeck
	}
	switch source {
	case field.ZoneDeck, field.ZoneGraveyard, field.ZoneBanished, field.ZoneHand:
		return true
	default:
		return false
	}
}

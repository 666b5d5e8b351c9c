package duel

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/duelverse/duelfield/internal/broadcast"
	"github.com/duelverse/duelfield/internal/deck"
	"github.com/duelverse/duelfield/internal/field"
	"github.com/duelverse/duelfield/internal/log"
)

// Session is one client's side of a duel: its field, the turn machine
// as this client tracks it, and the broadcast channel. Operations are
// serialized by the session mutex; each commits fully or not at all,
// and every committed mutation republishes a redacted snapshot.
type Session struct {
	mu sync.Mutex

	duelID  string
	seat    int
	Field   *field.State
	Turn    *TurnState
	chain   Chain
	logger  log.EventLogger
	channel broadcast.Channel
}

// SessionConfig carries the pieces a session is built from. Channel
// may be nil for offline or sandbox play.
type SessionConfig struct {
	DuelID  string
	Seat    int
	Deck    *deck.List
	Logger  log.EventLogger
	Channel broadcast.Channel
}

// NewSession builds a session with a freshly expanded field.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Session{
		duelID:  cfg.DuelID,
		seat:    cfg.Seat,
		Field:   field.NewState(cfg.Deck),
		Turn:    NewTurnState(),
		logger:  logger,
		channel: cfg.Channel,
	}
}

// DuelID returns the duel this session belongs to.
func (s *Session) DuelID() string { return s.duelID }

// Seat returns this client's seat (0 or 1).
func (s *Session) Seat() int { return s.seat }

// Events returns the event journal so far.
func (s *Session) Events() []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger.Events()
}

// publish pushes the current redacted snapshot to the duel channel.
// Fire and forget: a failed publish is logged and the next mutation
// heals the opponent's view.
func (s *Session) publish() {
	if s.channel == nil {
		return
	}
	snap := broadcast.Project(s.duelID, s.seat, s.Field)
	go func() {
		if err := s.channel.Publish(context.Background(), snap); err != nil {
			logrus.WithError(err).WithField("duel_id", s.duelID).
				Warn("snapshot publish failed")
		}
	}()
}

// Snapshot returns the current redacted projection of this side.
func (s *Session) Snapshot() broadcast.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return broadcast.Project(s.duelID, s.seat, s.Field)
}

// Draw draws up to n cards and returns them.
func (s *Session) Draw(n int) []*field.CardInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	drawn := s.Field.Draw(n)
	for _, c := range drawn {
		s.logger.Log(log.NewDrawEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, c.Name()))
	}
	if len(drawn) > 0 {
		s.publish()
	}
	return drawn
}

// Shuffle randomizes a pile.
func (s *Session) Shuffle(pile field.ZoneID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Field.ShufflePile(pile)
	s.logger.Log(log.NewShuffleEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, pile.String()))
	s.publish()
}

// Place moves a card into a zone, enforcing the summon rules when the
// destination is a monster slot. A face-up hand placement is a normal
// summon and must carry exactly the required tribute instances; a
// face-down one is a normal set. Arrivals from anywhere else are
// special summons gated by eligibility. Rejections leave the field
// untouched.
func (s *Session) Place(id string, target field.ZoneID, faceDown bool, pos field.Position, tributes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, source, _ := s.Field.FindInstance(id)
	if inst == nil {
		return field.ErrUnknownInstance
	}
	if !field.CanPlace(inst.Def, target, source) {
		return field.ErrIllegalPlacement
	}
	if inst.Def.IsLink() && pos == field.Defense {
		return field.ErrLinkPosition
	}

	summon := summonKind(source, target, faceDown)
	if summon != summonNormal {
		// Tributes only accompany a normal summon.
		tributes = nil
	}
	switch summon {
	case summonNormal:
		if s.Turn.TurnPlayer != s.seat {
			return ErrNotYourTurn
		}
		if !s.Turn.Phase.IsMain() {
			return ErrWrongPhase
		}
		if s.Turn.Summons[s.seat].HasNormalSummoned {
			return ErrSummonUsed
		}
		if need := s.Turn.RequiredTributes(inst.Def, s.seat); len(tributes) != need {
			return ErrTributesRequired
		}
	case summonSet:
		if s.Turn.TurnPlayer != s.seat {
			return ErrNotYourTurn
		}
		if !s.Turn.Phase.IsMain() {
			return ErrWrongPhase
		}
		if s.Turn.Summons[s.seat].HasNormalSet {
			return ErrSetUsed
		}
	case summonSpecial:
		if !s.Turn.CanSpecialSummon(inst.Def, source, s.seat) {
			return ErrNotSpecialLegal
		}
	}

	// All checks run before any mutation: a rejected summon must not
	// consume its tributes.
	if target.IsSlot() {
		if occ := s.Field.Slot(target); occ != nil && !containsID(tributes, occ.ID) {
			return field.ErrOccupied
		}
	}
	var names []string
	for _, tid := range tributes {
		t, tz, _ := s.Field.FindInstance(tid)
		if t == nil || !tz.IsSlot() {
			return field.ErrUnknownInstance
		}
		names = append(names, t.Name())
	}
	for _, tid := range tributes {
		if err := s.Field.Move(tid, field.ZoneGraveyard, MoveFaceUp()); err != nil {
			return err
		}
	}
	if len(names) > 0 {
		s.logger.Log(log.NewTributeEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, names))
	}

	if err := s.Field.Place(id, target, faceDown, pos); err != nil {
		return err
	}

	turn, phase := s.Turn.TurnCount, s.Turn.Phase.String()
	switch summon {
	case summonNormal:
		s.Turn.RecordNormalSummon(s.seat)
		s.logger.Log(log.NewNormalSummonEvent(turn, phase, s.seat, inst.Name(), target.String()))
	case summonSet:
		s.Turn.RecordNormalSet(s.seat)
		s.logger.Log(log.NewNormalSetEvent(turn, phase, s.seat, target.String()))
	case summonSpecial:
		s.logger.Log(log.NewSpecialSummonEvent(turn, phase, s.seat, inst.Name(), target.String()))
	default:
		s.logger.Log(log.NewPlaceEvent(turn, phase, s.seat, inst.Name(), target.String()))
	}
	s.publish()
	return nil
}

type summonClass int

const (
	summonNone summonClass = iota
	summonNormal
	summonSet
	summonSpecial
)

// summonKind classifies what a placement means in summon terms. Any
// arrival in a monster slot from outside the hand is a special summon
// and must pass eligibility; hand arrivals are normal summons or sets.
func summonKind(source, target field.ZoneID, faceDown bool) summonClass {
	if !target.IsMonsterSlot() && !target.IsExtraMonsterSlot() {
		return summonNone
	}
	if source != field.ZoneHand {
		return summonSpecial
	}
	if faceDown {
		return summonSet
	}
	return summonNormal
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// MoveFaceUp is shorthand for options forcing a face-up transfer.
func MoveFaceUp() field.MoveOptions {
	up := false
	return field.MoveOptions{FaceDown: &up}
}

// Move transfers a card between zones without summon bookkeeping.
func (s *Session) Move(id string, to field.ZoneID, opts field.MoveOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, from, _ := s.Field.FindInstance(id)
	if inst == nil {
		return field.ErrUnknownInstance
	}
	if err := s.Field.Move(id, to, opts); err != nil {
		return err
	}
	s.logger.Log(log.NewMoveEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, inst.Name(), from.String(), to.String()))
	s.publish()
	return nil
}

// Attach overlays a card onto the xyz monster in hostZone.
func (s *Session) Attach(hostZone field.ZoneID, materialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mat, _, _ := s.Field.FindInstance(materialID)
	if err := s.Field.AttachMaterial(hostZone, materialID); err != nil {
		return err
	}
	host := s.Field.Slot(hostZone)
	s.logger.Log(log.NewAttachEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, mat.Name(), host.Name()))
	s.publish()
	return nil
}

// Detach sends one material by index to the graveyard. A duplicate or
// stale request is a silent no-op.
func (s *Session) Detach(hostZone field.ZoneID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Field.DetachMaterial(hostZone, index)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	host := s.Field.Slot(hostZone)
	s.logger.Log(log.NewDetachEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, m.Name(), host.Name()))
	s.publish()
	return nil
}

// TogglePosition flips a monster between attack and defense.
func (s *Session) TogglePosition(hostZone field.ZoneID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Field.TogglePosition(hostZone); err != nil {
		return err
	}
	inst := s.Field.Slot(hostZone)
	s.logger.Log(log.NewChangePositionEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, inst.Name(), inst.Position.String()))
	s.publish()
	return nil
}

// Flip sets a slot occupant's orientation in place.
func (s *Session) Flip(hostZone field.ZoneID, faceDown bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Field.Flip(hostZone, faceDown); err != nil {
		return err
	}
	inst := s.Field.Slot(hostZone)
	s.logger.Log(log.NewFlipEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, inst.Name(), faceDown))
	s.publish()
	return nil
}

// ReturnToDeckTop puts a card on top of its home deck.
func (s *Session) ReturnToDeckTop(id string) error {
	return s.returnToDeck(id, true)
}

// ReturnToDeckBottom puts a card on the bottom of its home deck.
func (s *Session) ReturnToDeckBottom(id string) error {
	return s.returnToDeck(id, false)
}

func (s *Session) returnToDeck(id string, top bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, _, _ := s.Field.FindInstance(id)
	if inst == nil {
		return field.ErrUnknownInstance
	}
	var err error
	where := "bottom"
	if top {
		where = "top"
		err = s.Field.ReturnToDeckTop(id)
	} else {
		err = s.Field.ReturnToDeckBottom(id)
	}
	if err != nil {
		return err
	}
	s.logger.Log(log.NewReturnToDeckEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, inst.Name(), where))
	s.publish()
	return nil
}

// ReturnAllToDecks sweeps the whole side back into the decks.
func (s *Session) ReturnAllToDecks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Field.ReturnAllToDecks()
	s.logger.Log(log.NewReturnAllEvent(s.Turn.TurnCount, s.seat))
	s.publish()
}

// SideDeckExchange swaps equal selections between main and side deck.
func (s *Session) SideDeckExchange(fromMain, fromSide []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Field.SideDeckExchange(fromMain, fromSide); err != nil {
		return err
	}
	s.logger.Log(log.NewSideSwapEvent(s.Turn.TurnCount, s.seat, len(fromMain)))
	s.publish()
	return nil
}

// SetSpecialSummon toggles the effect-granted tribute bypass for this
// seat.
func (s *Session) SetSpecialSummon(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Turn.Summons[s.seat].CanSpecialSummon = enabled
}

// SetPhase jumps the local phase machine to an arbitrary phase.
func (s *Session) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Turn.Phase == p {
		return
	}
	s.Turn.Phase = p
	s.logger.Log(log.NewPhaseChangeEvent(s.Turn.TurnCount, p.String()))
}

// AdvancePhase steps the local phase machine.
func (s *Session) AdvancePhase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Turn.AdvancePhase()
	if s.Turn.Phase == PhaseDraw {
		s.logger.Log(log.NewTurnEvent(s.Turn.TurnCount, s.Turn.TurnPlayer))
	} else {
		s.logger.Log(log.NewPhaseChangeEvent(s.Turn.TurnCount, s.Turn.Phase.String()))
	}
	return s.Turn.Phase
}

// NextTurn hands the turn over regardless of the current phase.
func (s *Session) NextTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Turn.NextTurn()
	s.logger.Log(log.NewTurnEvent(s.Turn.TurnCount, s.Turn.TurnPlayer))
}

// ActivateChain pushes a slot occupant onto the chain.
func (s *Session) ActivateChain(hostZone field.ZoneID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !hostZone.IsSlot() {
		return field.ErrIllegalPlacement
	}
	inst := s.Field.Slot(hostZone)
	if inst == nil {
		return field.ErrEmptySlot
	}
	link := s.chain.Add(inst, s.seat)
	s.logger.Log(log.NewChainLinkEvent(s.Turn.TurnCount, s.Turn.Phase.String(), s.seat, inst.Name(), link.Index))
	return nil
}

// ResolveChain pops the topmost chain link, if any.
func (s *Session) ResolveChain() (ChainLink, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.chain.Resolve()
	if ok {
		s.logger.Log(log.NewChainResolveEvent(s.Turn.TurnCount, s.Turn.Phase.String(), link.Player, link.Card.Name(), link.Index))
	}
	return link, ok
}

// ChainLen returns the number of unresolved chain links.
func (s *Session) ChainLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chain.Len()
}

package duel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/duelverse/duelfield/internal/broadcast"
	"github.com/duelverse/duelfield/internal/card"
	"github.com/duelverse/duelfield/internal/deck"
	"github.com/duelverse/duelfield/internal/field"
	"github.com/duelverse/duelfield/internal/log"
)

var (
	smallMonster = &card.Definition{ID: 1, Name: "Gene-Warped Warwolf", Type: "Normal Monster", Level: 4}
	bigMonster   = &card.Definition{ID: 2, Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Level: 8}
	xyzDef       = &card.Definition{ID: 3, Name: "Number 39: Utopia", Type: "XYZ Monster", Level: 4}
	spellDef     = &card.Definition{ID: 4, Name: "Mystical Space Typhoon", Type: "Spell Card", Race: "Quick-Play"}
)

func sessionList() *deck.List {
	return &deck.List{
		Name: "session test",
		Main: []deck.Slot{
			{Def: smallMonster, Count: 20},
			{Def: bigMonster, Count: 10},
			{Def: spellDef, Count: 10},
		},
		Extra: []deck.Slot{{Def: xyzDef, Count: 2}},
		Side:  []deck.Slot{{Def: smallMonster, Count: 3}},
	}
}

// captureChannel records published snapshots for assertions.
type captureChannel struct {
	mu    sync.Mutex
	snaps []broadcast.Snapshot
}

func (c *captureChannel) Publish(_ context.Context, snap broadcast.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, snap)
	return nil
}

func (c *captureChannel) Subscribe(context.Context) (<-chan broadcast.Snapshot, error) {
	ch := make(chan broadcast.Snapshot)
	close(ch)
	return ch, nil
}

func (c *captureChannel) Close() error { return nil }

func (c *captureChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

// waitSnapshots blocks until at least n snapshots landed; publishing
// is fire-and-forget so tests have to wait for the goroutines.
func waitSnapshots(t *testing.T, c *captureChannel, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.count() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("saw %d snapshots, want at least %d", c.count(), n)
}

func newTestSession(t *testing.T, ch broadcast.Channel) *Session {
	t.Helper()
	return NewSession(SessionConfig{
		DuelID:  "duel-1",
		Seat:    0,
		Deck:    sessionList(),
		Logger:  log.NewMemoryLogger(),
		Channel: ch,
	})
}

// handInstance draws until an instance of def reaches the hand.
func handInstance(t *testing.T, s *Session, def *card.Definition) *field.CardInstance {
	t.Helper()
	for i := 0; i < 40; i++ {
		for _, c := range s.Field.Pile(field.ZoneHand) {
			if c.Def == def {
				return c
			}
		}
		if len(s.Draw(1)) == 0 {
			break
		}
	}
	t.Fatalf("never drew %s", def.Name)
	return nil
}

func toMain1(s *Session) {
	s.SetPhase(PhaseMain1)
}

func TestHighLevelSummonNeedsTributes(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)
	big := handInstance(t, s, bigMonster)

	err := s.Place(big.ID, field.ZoneMonster1, false, field.Attack, nil)
	if !errors.Is(err, ErrTributesRequired) {
		t.Fatalf("tribute-less level 8 summon = %v, want ErrTributesRequired", err)
	}
	if _, zone, _ := s.Field.FindInstance(big.ID); zone != field.ZoneHand {
		t.Fatal("rejected summon moved the card")
	}
	if s.Turn.Summons[0].HasNormalSummoned {
		t.Fatal("rejected summon consumed the budget")
	}
}

func TestTributeSummon(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	// Two small monsters hit the field first, via set and summon.
	m1 := handInstance(t, s, smallMonster)
	if err := s.Place(m1.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatalf("first summon: %v", err)
	}
	m2 := handInstance(t, s, smallMonster)
	if err := s.Place(m2.ID, field.ZoneMonster2, true, field.Defense, nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.NextTurn()
	s.NextTurn()
	toMain1(s)

	big := handInstance(t, s, bigMonster)
	if err := s.Place(big.ID, field.ZoneMonster3, false, field.Attack, []string{m1.ID, m2.ID}); err != nil {
		t.Fatalf("tribute summon: %v", err)
	}
	for _, id := range []string{m1.ID, m2.ID} {
		if _, zone, _ := s.Field.FindInstance(id); zone != field.ZoneGraveyard {
			t.Errorf("tribute %s in %v, want graveyard", id, zone)
		}
	}
	if s.Field.Slot(field.ZoneMonster3) == nil {
		t.Fatal("summoned monster not on the field")
	}
}

func TestTributeBypassWithSpecialFlag(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)
	s.SetSpecialSummon(true)

	big := handInstance(t, s, bigMonster)
	if err := s.Place(big.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatalf("bypassed summon: %v", err)
	}
}

func TestNormalSummonBudgetEnforced(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	m1 := handInstance(t, s, smallMonster)
	if err := s.Place(m1.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatal(err)
	}
	m2 := handInstance(t, s, smallMonster)
	if err := s.Place(m2.ID, field.ZoneMonster2, false, field.Attack, nil); !errors.Is(err, ErrSummonUsed) {
		t.Fatalf("second summon = %v, want ErrSummonUsed", err)
	}
	// The set budget is still open.
	if err := s.Place(m2.ID, field.ZoneMonster2, true, field.Defense, nil); err != nil {
		t.Fatalf("set after summon: %v", err)
	}
}

func TestSummonOutsideMainPhase(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetPhase(PhaseBattle)

	m := handInstance(t, s, smallMonster)
	if err := s.Place(m.ID, field.ZoneMonster1, false, field.Attack, nil); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("battle-phase summon = %v, want ErrWrongPhase", err)
	}
}

func TestSpecialSummonFromExtraDeck(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	xyz := s.Field.Pile(field.ZoneExtraDeck)[0]
	if err := s.Place(xyz.ID, field.ZoneExtraMonster1, false, field.Attack, nil); err != nil {
		t.Fatalf("special summon: %v", err)
	}
	// A special summon does not consume the normal summon.
	if s.Turn.Summons[0].HasNormalSummoned {
		t.Error("special summon consumed the normal summon budget")
	}
	evs := s.Events()
	last := evs[len(evs)-1]
	if last.Type != log.EventSpecialSummon {
		t.Errorf("last event = %v, want SpecialSummon", last.Type)
	}
}

func TestSpecialSummonFromGraveyard(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	m := handInstance(t, s, smallMonster)
	if err := s.Move(m.ID, field.ZoneGraveyard, field.MoveOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(m.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatalf("graveyard revival on own turn: %v", err)
	}
	if s.Turn.Summons[0].HasNormalSummoned {
		t.Error("revival consumed the normal summon budget")
	}
	evs := s.Events()
	if last := evs[len(evs)-1]; last.Type != log.EventSpecialSummon {
		t.Errorf("last event = %v, want SpecialSummon", last.Type)
	}

	// An extra-deck monster may only arrive from the extra deck.
	xyz := s.Field.Pile(field.ZoneExtraDeck)[0]
	if err := s.Move(xyz.ID, field.ZoneGraveyard, field.MoveOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(xyz.ID, field.ZoneExtraMonster1, false, field.Attack, nil); !errors.Is(err, ErrNotSpecialLegal) {
		t.Fatalf("extra-deck revival from graveyard = %v, want ErrNotSpecialLegal", err)
	}
}

func TestOffTurnRevivalRejected(t *testing.T) {
	s := NewSession(SessionConfig{
		DuelID: "duel-1",
		Seat:   1,
		Deck:   sessionList(),
		Logger: log.NewMemoryLogger(),
	})
	toMain1(s)

	m := handInstance(t, s, smallMonster)
	if err := s.Move(m.ID, field.ZoneGraveyard, field.MoveOptions{}); err != nil {
		t.Fatal(err)
	}
	// Seat 1 never holds the turn here.
	if err := s.Place(m.ID, field.ZoneMonster1, false, field.Attack, nil); !errors.Is(err, ErrNotSpecialLegal) {
		t.Fatalf("off-turn revival = %v, want ErrNotSpecialLegal", err)
	}
	if _, zone, _ := s.Field.FindInstance(m.ID); zone != field.ZoneGraveyard {
		t.Error("rejected revival moved the card")
	}
}

func TestSetIgnoresStrayTributes(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	m1 := handInstance(t, s, smallMonster)
	if err := s.Place(m1.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatal(err)
	}
	big := handInstance(t, s, bigMonster)
	if err := s.Place(big.ID, field.ZoneMonster2, true, field.Defense, []string{m1.ID}); err != nil {
		t.Fatalf("set with stray tribute ids: %v", err)
	}
	if _, zone, _ := s.Field.FindInstance(m1.ID); zone != field.ZoneMonster1 {
		t.Errorf("set consumed a tribute: card ended up in %v", zone)
	}
}

func TestXYZHostToGraveyardScenario(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)

	xyz := s.Field.Pile(field.ZoneExtraDeck)[0]
	if err := s.Place(xyz.ID, field.ZoneExtraMonster1, false, field.Attack, nil); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		mat := handInstance(t, s, smallMonster)
		if err := s.Attach(field.ZoneExtraMonster1, mat.ID); err != nil {
			t.Fatalf("attach %d: %v", i, err)
		}
	}

	gyBefore := s.Field.PileSize(field.ZoneGraveyard)
	if err := s.Move(xyz.ID, field.ZoneGraveyard, field.MoveOptions{}); err != nil {
		t.Fatal(err)
	}
	if s.Field.Slot(field.ZoneExtraMonster1) != nil {
		t.Error("extraMonster1 still occupied")
	}
	if got := s.Field.PileSize(field.ZoneGraveyard); got != gyBefore+3 {
		t.Errorf("graveyard grew by %d, want 3", got-gyBefore)
	}
}

func TestPublishPerMutation(t *testing.T) {
	ch := &captureChannel{}
	s := newTestSession(t, ch)
	toMain1(s)

	s.Draw(3)
	waitSnapshots(t, ch, 1)

	m := handInstance(t, s, smallMonster)
	before := ch.count()
	if err := s.Place(m.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatal(err)
	}
	waitSnapshots(t, ch, before+1)

	// A rejected operation publishes nothing.
	before = ch.count()
	if err := s.TogglePosition(field.ZoneMonster5); err == nil {
		t.Fatal("toggling an empty slot succeeded")
	}
	time.Sleep(20 * time.Millisecond)
	if ch.count() != before {
		t.Error("rejected operation published a snapshot")
	}
}

func TestSessionEventJournal(t *testing.T) {
	s := newTestSession(t, nil)
	toMain1(s)
	s.Draw(2)
	m := handInstance(t, s, smallMonster)
	if err := s.Place(m.ID, field.ZoneMonster1, false, field.Attack, nil); err != nil {
		t.Fatal(err)
	}
	s.ReturnAllToDecks()

	evs := s.Events()
	if len(evs) == 0 {
		t.Fatal("no events journaled")
	}
	for i, e := range evs {
		if e.Seq != i+1 {
			t.Fatalf("event %d has seq %d", i, e.Seq)
		}
	}
	last := evs[len(evs)-1]
	if last.Type != log.EventReturnAll {
		t.Errorf("last event = %v, want ReturnAll", last.Type)
	}
}

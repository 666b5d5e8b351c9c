package field

import (
	"testing"

	"github.com/duelverse/duelfield/internal/card"
)

var (
	normalMonster = &card.Definition{ID: 1, Name: "Gene-Warped Warwolf", Type: "Normal Monster", Level: 4}
	highMonster   = &card.Definition{ID: 2, Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Level: 8}
	xyzMonster    = &card.Definition{ID: 3, Name: "Number 39: Utopia", Type: "XYZ Monster", Level: 4}
	linkMonster   = &card.Definition{ID: 4, Name: "Decode Talker", Type: "Link Monster", LinkRating: 3}
	quickSpell    = &card.Definition{ID: 5, Name: "Mystical Space Typhoon", Type: "Spell Card", Race: "Quick-Play"}
	fieldSpell    = &card.Definition{ID: 6, Name: "Mystic Mine", Type: "Spell Card", Race: "Field"}
	normalTrap    = &card.Definition{ID: 7, Name: "Mirror Force", Type: "Trap Card", Race: "Normal"}
	ritualMonster = &card.Definition{ID: 8, Name: "Relinquished", Type: "Ritual Effect Monster", Level: 1}
)

func TestCanPlaceMonsterSlots(t *testing.T) {
	if !CanPlace(normalMonster, ZoneMonster1, ZoneHand) {
		t.Error("main-deck monster rejected from main monster slot")
	}
	if CanPlace(xyzMonster, ZoneMonster1, ZoneExtraDeck) {
		t.Error("extra-deck monster accepted in main monster slot")
	}
	if !CanPlace(xyzMonster, ZoneExtraMonster1, ZoneExtraDeck) {
		t.Error("extra-deck monster rejected from extra monster slot")
	}
	if CanPlace(normalMonster, ZoneExtraMonster1, ZoneHand) {
		t.Error("main-deck monster accepted in extra monster slot")
	}
	if CanPlace(quickSpell, ZoneMonster1, ZoneHand) {
		t.Error("spell accepted in monster slot")
	}
	// Unrecognized type strings classify as monsters.
	strange := &card.Definition{ID: 99, Name: "Chimera Beast", Type: "Creature", Level: 4}
	if !CanPlace(strange, ZoneMonster1, ZoneHand) {
		t.Error("unrecognized-type card rejected from main monster slot")
	}
	if CanPlace(strange, ZoneExtraMonster1, ZoneHand) {
		t.Error("unrecognized-type card accepted in extra monster slot")
	}
}

func TestCanPlaceSpellTrapSlots(t *testing.T) {
	if !CanPlace(quickSpell, ZoneSpell1, ZoneHand) {
		t.Error("spell rejected from spell/trap slot")
	}
	if !CanPlace(normalTrap, ZoneSpell3, ZoneHand) {
		t.Error("trap rejected from spell/trap slot")
	}
	if CanPlace(normalMonster, ZoneSpell1, ZoneHand) {
		t.Error("monster accepted in spell/trap slot")
	}
	if !CanPlace(fieldSpell, ZoneFieldSpell, ZoneHand) {
		t.Error("field spell rejected from field spell slot")
	}
	if CanPlace(quickSpell, ZoneFieldSpell, ZoneHand) {
		t.Error("non-field spell accepted in field spell slot")
	}
	if CanPlace(fieldSpell, ZoneFieldSpell, ZoneDeck) != true {
		t.Error("field spell placement should not depend on source")
	}
}

func TestCanPlacePilesAreSinks(t *testing.T) {
	for _, z := range []ZoneID{ZoneDeck, ZoneExtraDeck, ZoneSideDeck, ZoneGraveyard, ZoneBanished} {
		if !CanPlace(normalMonster, z, ZoneMonster1) {
			t.Errorf("monster rejected from pile %v", z)
		}
		if !CanPlace(quickSpell, z, ZoneSpell1) {
			t.Errorf("spell rejected from pile %v", z)
		}
	}
}

func TestCanPlaceHandOnlyFromDecks(t *testing.T) {
	if !CanPlace(normalMonster, ZoneHand, ZoneDeck) {
		t.Error("draw from deck rejected")
	}
	if !CanPlace(xyzMonster, ZoneHand, ZoneExtraDeck) {
		t.Error("add from extra deck rejected")
	}
	if CanPlace(normalMonster, ZoneHand, ZoneGraveyard) {
		t.Error("hand-add from graveyard accepted at validator layer")
	}
	if CanPlace(normalMonster, ZoneHand, ZoneBanished) {
		t.Error("hand-add from banished accepted at validator layer")
	}
}

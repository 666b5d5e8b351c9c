// Package field models one player's side of the field: the fixed slot
// zones, the ordered piles, and every movement operation between them.
package field

import "fmt"

// ZoneID identifies a single zone on one player's side. Slot zones
// hold at most one card; pile zones are ordered stacks.
type ZoneID int

const (
	ZoneMonster1 ZoneID = iota
	ZoneMonster2
	ZoneMonster3
	ZoneMonster4
	ZoneMonster5
	ZoneExtraMonster1
	ZoneExtraMonster2
	ZoneSpell1
	ZoneSpell2
	ZoneSpell3
	ZoneSpell4
	ZoneSpell5
	ZoneFieldSpell
	ZoneDeck
	ZoneExtraDeck
	ZoneSideDeck
	ZoneGraveyard
	ZoneBanished
	ZoneHand

	numZones
)

// NumZones is the count of distinct zones on one side of the field.
const NumZones = int(numZones)

// NumSlots is the count of single-card slot zones.
const NumSlots = int(ZoneFieldSpell) + 1

func (z ZoneID) String() string {
	switch z {
	case ZoneMonster1, ZoneMonster2, ZoneMonster3, ZoneMonster4, ZoneMonster5:
		return fmt.Sprintf("monster%d", int(z-ZoneMonster1)+1)
	case ZoneExtraMonster1, ZoneExtraMonster2:
		return fmt.Sprintf("extraMonster%d", int(z-ZoneExtraMonster1)+1)
	case ZoneSpell1, ZoneSpell2, ZoneSpell3, ZoneSpell4, ZoneSpell5:
		return fmt.Sprintf("spellTrap%d", int(z-ZoneSpell1)+1)
	case ZoneFieldSpell:
		return "fieldSpell"
	case ZoneDeck:
		return "deck"
	case ZoneExtraDeck:
		return "extraDeck"
	case ZoneSideDeck:
		return "sideDeck"
	case ZoneGraveyard:
		return "graveyard"
	case ZoneBanished:
		return "banished"
	case ZoneHand:
		return "hand"
	default:
		return "unknown"
	}
}

// ParseZone converts a wire name back to its ZoneID.
func ParseZone(name string) (ZoneID, error) {
	for z := ZoneID(0); z < numZones; z++ {
		if z.String() == name {
			return z, nil
		}
	}
	return 0, fmt.Errorf("unknown zone %q", name)
}

// IsSlot reports whether the zone holds at most one card.
func (z ZoneID) IsSlot() bool {
	return z >= ZoneMonster1 && z <= ZoneFieldSpell
}

// IsPile reports whether the zone is an ordered stack.
func (z ZoneID) IsPile() bool {
	return z >= ZoneDeck && z <= ZoneHand
}

// IsMonsterSlot reports whether the zone is a main monster slot.
func (z ZoneID) IsMonsterSlot() bool {
	return z >= ZoneMonster1 && z <= ZoneMonster5
}

// IsExtraMonsterSlot reports whether the zone is an extra monster slot.
func (z ZoneID) IsExtraMonsterSlot() bool {
	return z == ZoneExtraMonster1 || z == ZoneExtraMonster2
}

// IsSpellTrapSlot reports whether the zone is a spell/trap slot.
// The field spell slot is not included.
func (z ZoneID) IsSpellTrapSlot() bool {
	return z >= ZoneSpell1 && z <= ZoneSpell5
}

// Slots lists every slot zone in display order.
func Slots() []ZoneID {
	out := make([]ZoneID, 0, NumSlots)
	for z := ZoneMonster1; z <= ZoneFieldSpell; z++ {
		out = append(out, z)
	}
	return out
}

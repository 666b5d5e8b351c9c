package field

import "github.com/duelverse/duelfield/internal/card"

// CanPlace decides whether a card may occupy a target zone when
// arriving from a source zone. Rules are checked in priority order;
// pile zones other than the hand are unconditional sinks.
func CanPlace(def *card.Definition, target, source ZoneID) bool {
	switch {
	case target.IsMonsterSlot():
		return def.Category() == card.CategoryMonster && !def.IsExtraDeck()
	case target.IsExtraMonsterSlot():
		return def.Category() == card.CategoryMonster && def.IsExtraDeck()
	case target == ZoneFieldSpell:
		return def.IsFieldSpell()
	case target.IsSpellTrapSlot():
		return def.IsSpell() || def.IsTrap()
	case target == ZoneHand:
		// Only draws and searches land in the hand at this layer.
		return source == ZoneDeck || source == ZoneExtraDeck
	case target.IsPile():
		return true
	default:
		return false
	}
}

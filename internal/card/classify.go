package card

import "strings"

// Category is the coarse classification of a definition.
type Category int

const (
	CategoryMonster Category = iota
	CategorySpell
	CategoryTrap
)

func (c Category) String() string {
	switch c {
	case CategorySpell:
		return "spell"
	case CategoryTrap:
		return "trap"
	default:
		return "monster"
	}
}

// The classifiers below are total: any type string classifies as
// something, with monster as the documented fallback for strings that
// match nothing. Spell/trap checks take precedence, so a type
// containing both "spell" and "monster" classifies as spell.

// IsSpell reports whether the definition is a spell card.
func (d *Definition) IsSpell() bool {
	return strings.Contains(strings.ToLower(d.Type), "spell")
}

// IsTrap reports whether the definition is a trap card.
func (d *Definition) IsTrap() bool {
	return strings.Contains(strings.ToLower(d.Type), "trap")
}

// IsMonster reports whether the definition is a monster card.
func (d *Definition) IsMonster() bool {
	if d.IsSpell() || d.IsTrap() {
		return false
	}
	return strings.Contains(strings.ToLower(d.Type), "monster")
}

// Category returns the coarse classification, defaulting to monster.
func (d *Definition) Category() Category {
	switch {
	case d.IsSpell():
		return CategorySpell
	case d.IsTrap():
		return CategoryTrap
	default:
		return CategoryMonster
	}
}

var extraDeckTypes = []string{"fusion", "synchro", "xyz", "link"}

// IsExtraDeck reports whether the monster belongs to the extra deck
// (fusion/synchro/xyz/link variants).
func (d *Definition) IsExtraDeck() bool {
	t := strings.ToLower(d.Type)
	for _, sub := range extraDeckTypes {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// IsFieldSpell reports whether the card occupies the field-spell slot.
func (d *Definition) IsFieldSpell() bool {
	return d.IsSpell() && strings.EqualFold(d.Race, "field")
}

// IsRitual reports whether the monster is a ritual variant, which uses
// a different tribute formula.
func (d *Definition) IsRitual() bool {
	return strings.Contains(strings.ToLower(d.Type), "ritual") && d.IsMonster()
}

// IsXYZ reports whether the monster accumulates attached materials.
func (d *Definition) IsXYZ() bool {
	return strings.Contains(strings.ToLower(d.Type), "xyz")
}

// IsLink reports whether the monster is a link variant. Link monsters
// have no defense position.
func (d *Definition) IsLink() bool {
	return strings.Contains(strings.ToLower(d.Type), "link")
}

// IsPendulum reports whether the monster is a pendulum variant.
func (d *Definition) IsPendulum() bool {
	return strings.Contains(strings.ToLower(d.Type), "pendulum")
}

// IsToken reports whether the card is a token (name or type match).
func (d *Definition) IsToken() bool {
	return strings.Contains(strings.ToLower(d.Type), "token") ||
		strings.Contains(strings.ToLower(d.Name), "token")
}

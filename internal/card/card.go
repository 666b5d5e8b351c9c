// Package card holds immutable card definitions and the pure
// classification functions over their type/race strings.
package card

// ImageRef points at the hosted artwork for a card.
type ImageRef struct {
	URL      string `yaml:"url" json:"url"`
	SmallURL string `yaml:"small_url" json:"smallUrl,omitempty"`
}

// Definition is a single card definition as supplied by the deck
// builder. Definitions are shared and never mutated in play; all
// mutable state lives on field.CardInstance.
type Definition struct {
	ID         int        `yaml:"id"`
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"` // e.g. "Effect Monster", "Normal Spell"
	Race       string     `yaml:"race"` // e.g. "Dragon", or "Field" for field spells
	Attribute  string     `yaml:"attribute,omitempty"`
	Level      int        `yaml:"level,omitempty"` // level, rank, or 0
	LinkRating int        `yaml:"link_rating,omitempty"`
	ATK        int        `yaml:"atk,omitempty"`
	DEF        int        `yaml:"def,omitempty"`
	Desc       string     `yaml:"desc,omitempty"`
	Images     []ImageRef `yaml:"images,omitempty"`
}

func (d *Definition) String() string {
	return d.Name
}

// Image returns the primary artwork URL, or "" if none is known.
func (d *Definition) Image() string {
	if len(d.Images) == 0 {
		return ""
	}
	return d.Images[0].URL
}

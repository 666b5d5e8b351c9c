package card

import "testing"

func def(name, typ, race string) *Definition {
	return &Definition{Name: name, Type: typ, Race: race}
}

func TestCategoryPrecedence(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		want Category
	}{
		{"plain monster", "Effect Monster", CategoryMonster},
		{"normal spell", "Spell Card", CategorySpell},
		{"continuous trap", "Trap Card", CategoryTrap},
		{"spell wins over monster", "Spell Monster", CategorySpell},
		{"unknown falls back to monster", "Skill Card", CategoryMonster},
		{"empty falls back to monster", "", CategoryMonster},
	}
	for _, c := range cases {
		d := def(c.name, c.typ, "")
		if got := d.Category(); got != c.want {
			t.Errorf("%s: Category() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsMonsterExcludesSpellTrap(t *testing.T) {
	if def("x", "Spell Monster", "").IsMonster() {
		t.Error("spell-typed card classified as monster")
	}
	if !def("x", "Ritual Effect Monster", "").IsMonster() {
		t.Error("ritual effect monster not classified as monster")
	}
}

func TestIsExtraDeck(t *testing.T) {
	cases := []struct {
		typ  string
		want bool
	}{
		{"Fusion Monster", true},
		{"Synchro Tuner Monster", true},
		{"XYZ Monster", true},
		{"Link Monster", true},
		{"XYZ Pendulum Effect Monster", true},
		{"Effect Monster", false},
		{"Ritual Monster", false},
		{"Spell Card", false},
	}
	for _, c := range cases {
		if got := def("x", c.typ, "").IsExtraDeck(); got != c.want {
			t.Errorf("IsExtraDeck(%q) = %v, want %v", c.typ, got, c.want)
		}
	}
}

func TestIsFieldSpell(t *testing.T) {
	if !def("x", "Spell Card", "Field").IsFieldSpell() {
		t.Error("field race spell not recognized as field spell")
	}
	if def("x", "Spell Card", "Normal").IsFieldSpell() {
		t.Error("normal spell recognized as field spell")
	}
	if def("x", "Effect Monster", "Field").IsFieldSpell() {
		t.Error("monster with field race recognized as field spell")
	}
}

func TestIsToken(t *testing.T) {
	if !def("Sheep Token", "Token", "").IsToken() {
		t.Error("token type not recognized")
	}
	if !def("Kuriboh Token", "Effect Monster", "").IsToken() {
		t.Error("token name not recognized")
	}
	if def("Kuriboh", "Effect Monster", "").IsToken() {
		t.Error("plain monster recognized as token")
	}
}

func TestLinkAndXYZ(t *testing.T) {
	link := def("x", "Link Monster", "")
	if !link.IsLink() || !link.IsExtraDeck() {
		t.Error("link monster misclassified")
	}
	xyz := def("x", "XYZ Monster", "")
	if !xyz.IsXYZ() || !xyz.IsExtraDeck() {
		t.Error("xyz monster misclassified")
	}
}

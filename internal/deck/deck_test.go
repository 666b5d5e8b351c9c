package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/duelverse/duelfield/internal/card"
)

func testLibrary(t *testing.T) *card.Library {
	t.Helper()
	lib, err := card.NewLibrary([]*card.Definition{
		{ID: 1, Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Level: 8},
		{ID: 2, Name: "Mystical Space Typhoon", Type: "Spell Card", Race: "Quick-Play"},
		{ID: 3, Name: "Number 39: Utopia", Type: "XYZ Monster", Level: 4},
		{ID: 4, Name: "Effect Veiler", Type: "Effect Monster", Level: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestLoad(t *testing.T) {
	yaml := `name: "Test Deck"
main:
  - name: "Blue-Eyes White Dragon"
    count: 3
  - name: "Mystical Space Typhoon"
    count: 2
extra:
  - name: "Number 39: Utopia"
    count: 1
side:
  - name: "Effect Veiler"
    count: 2
`
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := Load(path, testLibrary(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Name != "Test Deck" {
		t.Errorf("Name = %q", list.Name)
	}
	if got := list.MainSize(); got != 5 {
		t.Errorf("MainSize() = %d, want 5", got)
	}
	if got := list.ExtraSize(); got != 1 {
		t.Errorf("ExtraSize() = %d, want 1", got)
	}
	if got := list.SideSize(); got != 2 {
		t.Errorf("SideSize() = %d, want 2", got)
	}
	if list.Main[0].Def.Level != 8 {
		t.Error("main deck entry not bound to library definition")
	}
}

func TestResolveUnknownCard(t *testing.T) {
	df := &File{
		Name: "Broken",
		Main: []Entry{{Name: "Nonexistent Card", Count: 1}},
	}
	if _, err := Resolve(df, testLibrary(t)); err == nil {
		t.Fatal("unknown card name accepted")
	}
}

func TestResolveBadCount(t *testing.T) {
	df := &File{
		Name: "Broken",
		Main: []Entry{{Name: "Effect Veiler", Count: 0}},
	}
	if _, err := Resolve(df, testLibrary(t)); err == nil {
		t.Fatal("zero count accepted")
	}
}

package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
)

func TestDefaultEffects(t *testing.T) {
	table := DefaultEffects()

	e, ok := table.Effect("Offer Handshake")
	if !ok {
		t.Fatal("Offer Handshake missing")
	}
	if !e.DiscardOnPlay || len(e.Ops) != 2 || !e.Ops[0].UpTo {
		t.Fatalf("unexpected Offer Handshake entry: %+v", e)
	}
	if j, ok := table.Effect("Jockeying for Position"); !ok || !j.Jockeying {
		t.Fatal("Jockeying for Position should set the jockeying flag")
	}

	r, ok := table.Reversal("Clean Break")
	if !ok || !r.EndsTurn || r.Against != AgainstTitle || r.Match != "Jockeying for Position" {
		t.Fatalf("unexpected Clean Break rule: %+v", r)
	}
	if r.Ops[0].Kind != OpOpponentDiscard || r.Ops[0].Chooser != ChooserDiscarder {
		t.Fatal("Clean Break makes the attacker discard")
	}
	if _, ok := table.Effect("Chop"); ok {
		t.Fatal("plain maneuvers have no effect entry")
	}
}

func TestParseEffectsRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "effects: [", "parse effects"},
		{"missing id", "effects:\n  - ops: []\n", "missing id"},
		{"unknown op", "effects:\n  - id: X\n    ops:\n      - op: fly\n", "unknown op"},
		{"negative count", "effects:\n  - id: X\n    ops:\n      - op: draw\n        n: -1\n", "negative"},
		{"bad chooser", "effects:\n  - id: X\n    ops:\n      - op: opponent-discard\n        n: 1\n        chooser: nobody\n", "unknown chooser"},
		{"missing title", "reversals:\n  - against: maneuver\n", "missing title"},
		{"title without match", "reversals:\n  - title: X\n    against: title\n", "needs match"},
		{"unknown target", "reversals:\n  - title: X\n    against: everything\n", "unknown target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEffects([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadEffects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.yaml")
	data := "effects:\n  - id: Custom\n    ops:\n      - op: draw\n        n: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadEffects(path)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := table.Effect("Custom")
	if !ok || e.Ops[0].Kind != OpDraw || e.Ops[0].N != 2 {
		t.Fatalf("unexpected entry %+v", e)
	}

	if _, err := LoadEffects(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestBundledCatalogMatchesTables(t *testing.T) {
	cat, err := catalog.Load("../../data/cards.json", "../../data/superstar.json")
	if err != nil {
		t.Fatalf("load bundled catalog: %v", err)
	}
	table := DefaultEffects()
	for id := range table.effects {
		card, ok := cat.Card(id)
		if !ok {
			t.Errorf("effect %q has no card", id)
			continue
		}
		if card.EffectID != id {
			t.Errorf("card %q resolves effect id %q, want %q", id, card.EffectID, id)
		}
	}
	for title := range table.reversals {
		card, ok := cat.Card(title)
		if !ok || !card.HasType(catalog.TypeReversal) {
			t.Errorf("reversal rule %q has no reversal card", title)
		}
	}
	for _, title := range cat.Titles() {
		card, _ := cat.Card(title)
		if card.EffectID == "" {
			continue
		}
		if _, ok := table.Effect(card.EffectID); !ok {
			t.Errorf("card %q names effect %q, which the table lacks", title, card.EffectID)
		}
	}
	for _, name := range []string{"KANE", "THE ROCK", "THE UNDERTAKER", "CHRIS JERICHO", "STONE COLD STEVE AUSTIN", "MANKIND"} {
		s, ok := cat.Superstar(name)
		if !ok {
			t.Fatalf("superstar %q missing", name)
		}
		if abilityFor(s.Ability) == nil {
			t.Errorf("%s has no ability for id %q", name, s.Ability)
		}
	}
	if hhh, ok := cat.Superstar("HHH"); !ok || hhh.Ability != catalog.AbilityNone {
		t.Error("HHH has no ability")
	}
}

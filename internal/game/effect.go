package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
)

//go:embed effects.yaml
var defaultEffectsYAML []byte

// OpKind is a primitive effect operation.
type OpKind string

const (
	OpDiscard         OpKind = "discard"          // self discards N, self chooses
	OpOpponentDiscard OpKind = "opponent-discard" // opponent discards N
	OpDraw            OpKind = "draw"             // self draws N (or up to N)
	OpOpponentDraw    OpKind = "opponent-draw"    // opponent draws N
	OpRecover         OpKind = "recover"          // up to N ringside cards to the arsenal bottom
	OpSelfDamage      OpKind = "self-damage"      // self takes N damage
)

// Chooser values for opponent-discard.
const (
	ChooserSelf      = "self"
	ChooserDiscarder = "discarder"
)

// Reversal targets for named rules.
const (
	AgainstManeuver   = "maneuver"
	AgainstStrike     = "strike"
	AgainstGrapple    = "grapple"
	AgainstSubmission = "submission"
	AgainstAction     = "action"
	AgainstTitle      = "title"
)

// Op is a single step of a card effect.
type Op struct {
	Kind    OpKind `yaml:"op"`
	N       int    `yaml:"n"`
	UpTo    bool   `yaml:"up_to"`
	Chooser string `yaml:"chooser"`
}

// EffectEntry lists the ops a card runs when it is successfully played.
type EffectEntry struct {
	ID            string `yaml:"id"`
	Ops           []Op   `yaml:"ops"`
	DiscardOnPlay bool   `yaml:"discard_on_play"`
	Jockeying     bool   `yaml:"jockeying"`
}

// ReversalRule overrides subtype matching for a named reversal and lists what
// happens when it reverses.
type ReversalRule struct {
	Title     string `yaml:"title"`
	Against   string `yaml:"against"`
	Match     string `yaml:"match"` // attacking title, for against: title
	Ops       []Op   `yaml:"ops"`
	EndsTurn  bool   `yaml:"ends_turn"`
	Jockeying bool   `yaml:"jockeying"`
}

type effectFile struct {
	Effects   []EffectEntry  `yaml:"effects"`
	Reversals []ReversalRule `yaml:"reversals"`
}

// EffectTable maps effect ids to play effects and reversal titles to rules.
type EffectTable struct {
	effects   map[string]*EffectEntry
	reversals map[string]*ReversalRule
}

// ParseEffects decodes and validates an effect table.
func ParseEffects(data []byte) (*EffectTable, error) {
	var f effectFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse effects: %w", err)
	}
	t := &EffectTable{
		effects:   make(map[string]*EffectEntry, len(f.Effects)),
		reversals: make(map[string]*ReversalRule, len(f.Reversals)),
	}
	for i := range f.Effects {
		e := &f.Effects[i]
		if e.ID == "" {
			return nil, fmt.Errorf("effect %d: missing id", i)
		}
		if err := validateOps(e.Ops); err != nil {
			return nil, fmt.Errorf("effect %q: %w", e.ID, err)
		}
		t.effects[e.ID] = e
	}
	for i := range f.Reversals {
		r := &f.Reversals[i]
		if r.Title == "" {
			return nil, fmt.Errorf("reversal %d: missing title", i)
		}
		switch r.Against {
		case "", AgainstManeuver, AgainstStrike, AgainstGrapple, AgainstSubmission, AgainstAction:
		case AgainstTitle:
			if r.Match == "" {
				return nil, fmt.Errorf("reversal %q: against title needs match", r.Title)
			}
		default:
			return nil, fmt.Errorf("reversal %q: unknown target %q", r.Title, r.Against)
		}
		if err := validateOps(r.Ops); err != nil {
			return nil, fmt.Errorf("reversal %q: %w", r.Title, err)
		}
		t.reversals[r.Title] = r
	}
	return t, nil
}

func validateOps(ops []Op) error {
	for _, op := range ops {
		switch op.Kind {
		case OpDiscard, OpDraw, OpOpponentDraw, OpRecover, OpSelfDamage:
		case OpOpponentDiscard:
			if op.Chooser != "" && op.Chooser != ChooserSelf && op.Chooser != ChooserDiscarder {
				return fmt.Errorf("unknown chooser %q", op.Chooser)
			}
		default:
			return fmt.Errorf("unknown op %q", op.Kind)
		}
		if op.N < 0 {
			return fmt.Errorf("op %s: negative count", op.Kind)
		}
	}
	return nil
}

// LoadEffects reads an effect table from disk.
func LoadEffects(path string) (*EffectTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read effects: %w", err)
	}
	return ParseEffects(data)
}

// DefaultEffects returns the built-in effect table for the bundled catalog.
func DefaultEffects() *EffectTable {
	t, err := ParseEffects(defaultEffectsYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// Effect looks up the play effect for an effect id.
func (t *EffectTable) Effect(id string) (*EffectEntry, bool) {
	e, ok := t.effects[id]
	return e, ok
}

// Reversal looks up the named rule for a reversal title.
func (t *EffectTable) Reversal(title string) (*ReversalRule, bool) {
	r, ok := t.reversals[title]
	return r, ok
}

// matches reports whether a named rule applies to the play being resolved.
func (r *ReversalRule) matches(res *resolution) bool {
	attack := res.Card.Card
	switch r.Against {
	case AgainstManeuver:
		return res.As == catalog.TypeManeuver
	case AgainstStrike:
		return res.As == catalog.TypeManeuver && attack.HasSubtype(catalog.SubtypeStrike)
	case AgainstGrapple:
		return res.As == catalog.TypeManeuver && attack.HasSubtype(catalog.SubtypeGrapple)
	case AgainstSubmission:
		return res.As == catalog.TypeManeuver && attack.HasSubtype(catalog.SubtypeSubmission)
	case AgainstAction:
		return res.As == catalog.TypeAction
	case AgainstTitle:
		return attack.Title == r.Match
	}
	return false
}

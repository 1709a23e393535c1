package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownCard is returned when a title does not resolve in the catalog.
var ErrUnknownCard = errors.New("unknown card")

// CardType is one of the three printed card types.
type CardType int

const (
	TypeManeuver CardType = iota
	TypeAction
	TypeReversal
)

func (t CardType) String() string {
	switch t {
	case TypeManeuver:
		return "Maneuver"
	case TypeAction:
		return "Action"
	case TypeReversal:
		return "Reversal"
	default:
		return "Unknown"
	}
}

// ParseCardType converts a printed type name.
func ParseCardType(s string) (CardType, error) {
	switch strings.TrimSpace(s) {
	case "Maneuver":
		return TypeManeuver, nil
	case "Action":
		return TypeAction, nil
	case "Reversal":
		return TypeReversal, nil
	default:
		return 0, fmt.Errorf("unknown card type %q", s)
	}
}

// Subtypes used by the rules engine and the deck validator.
const (
	SubtypeStrike                 = "Strike"
	SubtypeGrapple                = "Grapple"
	SubtypeSubmission             = "Submission"
	SubtypeUnique                 = "Unique"
	SubtypeSetUp                  = "SetUp"
	SubtypeHeel                   = "Heel"
	SubtypeFace                   = "Face"
	SubtypeReversalStrike         = "ReversalStrike"
	SubtypeReversalStrikeSpecial  = "ReversalStrikeSpecial"
	SubtypeReversalGrapple        = "ReversalGrapple"
	SubtypeReversalGrappleSpecial = "ReversalGrappleSpecial"
	SubtypeReversalSubmission     = "ReversalSubmission"
	SubtypeReversalAction         = "ReversalAction"
	SubtypeReversalSpecial        = "ReversalSpecial"
)

// Damage is a printed damage value. Variable damage ("#") equals the damage of
// the maneuver being reversed.
type Damage struct {
	Value    int
	Variable bool
}

func (d Damage) String() string {
	if d.Variable {
		return "#"
	}
	return fmt.Sprintf("%d", d.Value)
}

// Resolve returns the effective value, using reversed when the damage is variable.
func (d Damage) Resolve(reversed int) int {
	if d.Variable {
		return reversed
	}
	return d.Value
}

// Card is the static definition of a card title.
type Card struct {
	Title     string
	Types     []CardType
	Subtypes  []string
	Fortitude int
	Damage    Damage
	StunValue int
	EffectID  string // key into the effect table; empty when the card has no bespoke effect
	Text      string
}

func (c *Card) String() string {
	return c.Title
}

// HasType reports whether the card carries the given type.
func (c *Card) HasType(t CardType) bool {
	return slices.Contains(c.Types, t)
}

// HasSubtype reports whether the card carries the given subtype.
func (c *Card) HasSubtype(s string) bool {
	return slices.Contains(c.Subtypes, s)
}

// AbilityID selects a superstar ability in the engine's ability table.
type AbilityID string

const (
	AbilityNone             AbilityID = ""
	AbilityOverturnOpponent AbilityID = "overturn-opponent"
	AbilityRecoverToArsenal AbilityID = "recover-to-arsenal"
	AbilityDiscardRecover   AbilityID = "discard-recover"
	AbilityMutualDiscard    AbilityID = "mutual-discard"
	AbilityDrawReturn       AbilityID = "draw-return"
	AbilityResilient        AbilityID = "resilient"
)

// Superstar is the static definition of a superstar card.
type Superstar struct {
	Name     string
	Logo     string
	HandSize int
	Value    int
	Ability  AbilityID
	Text     string
}

func (s *Superstar) String() string {
	return s.Name
}

// Catalog is an immutable lookup of cards by title and superstars by name.
type Catalog struct {
	cards      map[string]*Card
	superstars map[string]*Superstar
	logos      map[string]bool
	titles     []string
}

// New builds a catalog. Later duplicates replace earlier ones.
func New(cards []*Card, superstars []*Superstar) *Catalog {
	c := &Catalog{
		cards:      make(map[string]*Card, len(cards)),
		superstars: make(map[string]*Superstar, len(superstars)),
		logos:      make(map[string]bool, len(superstars)),
	}
	for _, card := range cards {
		if _, ok := c.cards[card.Title]; !ok {
			c.titles = append(c.titles, card.Title)
		}
		c.cards[card.Title] = card
	}
	for _, s := range superstars {
		c.superstars[s.Name] = s
		if s.Logo != "" {
			c.logos[s.Logo] = true
		}
	}
	return c
}

// Card looks up a card by title.
func (c *Catalog) Card(title string) (*Card, bool) {
	card, ok := c.cards[title]
	return card, ok
}

// MustCard looks up a card by title and returns ErrUnknownCard when missing.
func (c *Catalog) MustCard(title string) (*Card, error) {
	card, ok := c.cards[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, title)
	}
	return card, nil
}

// Superstar looks up a superstar by name.
func (c *Catalog) Superstar(name string) (*Superstar, bool) {
	s, ok := c.superstars[name]
	return s, ok
}

// IsLogo reports whether s is the faction logo of any superstar.
func (c *Catalog) IsLogo(s string) bool {
	return c.logos[s]
}

// Titles returns card titles in load order.
func (c *Catalog) Titles() []string {
	return slices.Clone(c.titles)
}

// Resolve maps a list of titles to card definitions.
func (c *Catalog) Resolve(titles []string) ([]*Card, error) {
	cards := make([]*Card, 0, len(titles))
	for _, t := range titles {
		card, err := c.MustCard(t)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

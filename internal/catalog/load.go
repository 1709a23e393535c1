package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// cardEntry mirrors one element of cards.json. JSON is valid YAML, so the same
// decoder reads both formats.
type cardEntry struct {
	Title      string   `yaml:"Title"`
	Types      []string `yaml:"Types"`
	Subtypes   []string `yaml:"Subtypes"`
	Fortitude  string   `yaml:"Fortitude"`
	Damage     string   `yaml:"Damage"`
	StunValue  string   `yaml:"StunValue"`
	CardEffect string   `yaml:"CardEffect"`
	EffectID   string   `yaml:"EffectID"`
}

// superstarEntry mirrors one element of superstar.json.
type superstarEntry struct {
	Name             string `yaml:"Name"`
	Logo             string `yaml:"Logo"`
	HandSize         int    `yaml:"HandSize"`
	SuperstarValue   int    `yaml:"SuperstarValue"`
	SuperstarAbility string `yaml:"SuperstarAbility"`
	AbilityID        string `yaml:"AbilityID"`
}

// Load reads the card and superstar tables and builds a catalog.
func Load(cardsPath, superstarsPath string) (*Catalog, error) {
	cardData, err := os.ReadFile(cardsPath)
	if err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	superData, err := os.ReadFile(superstarsPath)
	if err != nil {
		return nil, fmt.Errorf("read superstars: %w", err)
	}
	cards, err := ParseCards(cardData)
	if err != nil {
		return nil, err
	}
	superstars, err := ParseSuperstars(superData)
	if err != nil {
		return nil, err
	}
	return New(cards, superstars), nil
}

// ParseCards decodes a card table.
func ParseCards(data []byte) ([]*Card, error) {
	var entries []cardEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	cards := make([]*Card, 0, len(entries))
	for _, e := range entries {
		card, err := e.card()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.Title, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseSuperstars decodes a superstar table.
func ParseSuperstars(data []byte) ([]*Superstar, error) {
	var entries []superstarEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse superstars: %w", err)
	}
	superstars := make([]*Superstar, 0, len(entries))
	for _, e := range entries {
		superstars = append(superstars, &Superstar{
			Name:     e.Name,
			Logo:     e.Logo,
			HandSize: e.HandSize,
			Value:    e.SuperstarValue,
			Ability:  AbilityID(e.AbilityID),
			Text:     e.SuperstarAbility,
		})
	}
	return superstars, nil
}

func (e cardEntry) card() (*Card, error) {
	if e.Title == "" {
		return nil, fmt.Errorf("missing title")
	}
	card := &Card{
		Title:    e.Title,
		Subtypes: e.Subtypes,
		Text:     e.CardEffect,
		EffectID: e.EffectID,
	}
	for _, t := range e.Types {
		ct, err := ParseCardType(t)
		if err != nil {
			return nil, err
		}
		card.Types = append(card.Types, ct)
	}
	var err error
	if card.Fortitude, err = parseStat(e.Fortitude); err != nil {
		return nil, fmt.Errorf("fortitude: %w", err)
	}
	if card.StunValue, err = parseStat(e.StunValue); err != nil {
		return nil, fmt.Errorf("stun value: %w", err)
	}
	if card.Damage, err = ParseDamage(e.Damage); err != nil {
		return nil, fmt.Errorf("damage: %w", err)
	}
	if card.EffectID == "" && hasPlayEffect(e.CardEffect) {
		card.EffectID = e.Title
	}
	return card, nil
}

// ParseDamage parses a printed damage value, accepting "#" for variable damage.
func ParseDamage(s string) (Damage, error) {
	s = strings.TrimSpace(s)
	if s == "#" {
		return Damage{Variable: true}, nil
	}
	v, err := parseStat(s)
	if err != nil {
		return Damage{}, err
	}
	return Damage{Value: v}, nil
}

func parseStat(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}
	return v, nil
}

// hasPlayEffect reports whether printed text describes something that happens
// when the card resolves, as opposed to plain damage or reversal wording.
func hasPlayEffect(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "successfully played") || strings.Contains(lower, "as an action")
}

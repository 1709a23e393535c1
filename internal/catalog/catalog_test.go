package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsJSON = `[
  {
    "Title": "Chop",
    "Types": ["Maneuver"],
    "Subtypes": ["Strike"],
    "Fortitude": "0",
    "Damage": "3",
    "StunValue": "1",
    "CardEffect": "Does 3D."
  },
  {
    "Title": "Head Butt",
    "Types": ["Maneuver"],
    "Subtypes": ["Strike"],
    "Fortitude": "0",
    "Damage": "2",
    "StunValue": "1",
    "CardEffect": "When successfully played, you must discard 1 card."
  },
  {
    "Title": "Rolling Takedown",
    "Types": ["Reversal"],
    "Subtypes": ["ReversalGrappleSpecial"],
    "Fortitude": "0",
    "Damage": "#",
    "StunValue": "0",
    "CardEffect": "Reverse any Grapple maneuver that does 7D or less."
  }
]`

const superstarsJSON = `[
  {
    "Name": "KANE",
    "Logo": "Kane",
    "HandSize": 7,
    "SuperstarValue": 2,
    "SuperstarAbility": "At the start of your turn, opponent overturns 1 card.",
    "AbilityID": "overturn-opponent"
  },
  {
    "Name": "HHH",
    "Logo": "HHH",
    "HandSize": 10,
    "SuperstarValue": 3,
    "SuperstarAbility": "None, isn't he great enough?"
  }
]`

func TestParseCards(t *testing.T) {
	cards, err := ParseCards([]byte(cardsJSON))
	require.NoError(t, err)
	require.Len(t, cards, 3)

	chop := cards[0]
	assert.Equal(t, "Chop", chop.Title)
	assert.True(t, chop.HasType(TypeManeuver))
	assert.False(t, chop.HasType(TypeReversal))
	assert.True(t, chop.HasSubtype(SubtypeStrike))
	assert.Equal(t, Damage{Value: 3}, chop.Damage)
	assert.Equal(t, 1, chop.StunValue)
	assert.Empty(t, chop.EffectID, "plain damage text has no bespoke effect")

	assert.Equal(t, "Head Butt", cards[1].EffectID)

	rolling := cards[2]
	assert.True(t, rolling.Damage.Variable)
	assert.Equal(t, "#", rolling.Damage.String())
	assert.Equal(t, 5, rolling.Damage.Resolve(5))
}

func TestParseCardsRejectsBadStat(t *testing.T) {
	_, err := ParseCards([]byte(`[{"Title": "Broken", "Types": ["Maneuver"], "Fortitude": "x"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")

	_, err = ParseCards([]byte(`[{"Title": "Weird", "Types": ["Spell"]}]`))
	require.Error(t, err)
}

func TestParseSuperstars(t *testing.T) {
	supers, err := ParseSuperstars([]byte(superstarsJSON))
	require.NoError(t, err)
	require.Len(t, supers, 2)
	assert.Equal(t, AbilityOverturnOpponent, supers[0].Ability)
	assert.Equal(t, 7, supers[0].HandSize)
	assert.Equal(t, AbilityNone, supers[1].Ability)
}

func TestLoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	cardsPath := filepath.Join(dir, "cards.json")
	supersPath := filepath.Join(dir, "superstar.json")
	require.NoError(t, os.WriteFile(cardsPath, []byte(cardsJSON), 0o644))
	require.NoError(t, os.WriteFile(supersPath, []byte(superstarsJSON), 0o644))

	cat, err := Load(cardsPath, supersPath)
	require.NoError(t, err)

	_, ok := cat.Card("Chop")
	assert.True(t, ok)
	_, ok = cat.Superstar("KANE")
	assert.True(t, ok)
	assert.True(t, cat.IsLogo("Kane"))
	assert.False(t, cat.IsLogo("Strike"))
	assert.Equal(t, []string{"Chop", "Head Butt", "Rolling Takedown"}, cat.Titles())

	_, err = cat.Resolve([]string{"Chop", "Missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCard))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), "also-nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read cards")
}

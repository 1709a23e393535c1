package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

var chop = &catalog.Card{
	Title:     "Chop",
	Types:     []catalog.CardType{catalog.TypeManeuver},
	Subtypes:  []string{catalog.SubtypeStrike},
	Damage:    catalog.Damage{Value: 3},
	StunValue: 1,
	Text:      "Does 3D.",
}

var rolling = &catalog.Card{
	Title:    "Rolling Takedown",
	Types:    []catalog.CardType{catalog.TypeReversal},
	Subtypes: []string{catalog.SubtypeReversalGrappleSpecial},
	Damage:   catalog.Damage{Variable: true},
}

func testState() *game.GameState {
	gs := game.NewGameState(
		&catalog.Superstar{Name: "KANE", HandSize: 7},
		&catalog.Superstar{Name: "THE ROCK", HandSize: 5},
	)
	gs.MatchID = "m-1"
	gs.Turn = 3
	gs.Phase = game.PhaseAction
	gs.TurnPlayer = 1

	p0 := gs.Players[0]
	p0.Fortitude = 4
	p0.Hand = []*game.CardInstance{gs.CreateCardInstance(chop, 0), gs.CreateCardInstance(rolling, 0)}
	p0.Arsenal = []*game.CardInstance{gs.CreateCardInstance(chop, 0)}
	p0.Ringside = []*game.CardInstance{gs.CreateCardInstance(rolling, 0)}

	p1 := gs.Players[1]
	p1.Hand = []*game.CardInstance{gs.CreateCardInstance(chop, 1)}
	p1.RingArea = []*game.CardInstance{gs.CreateCardInstance(chop, 1)}
	return gs
}

func TestBuildStateViewHidesOpponentHand(t *testing.T) {
	gs := testState()
	sv := BuildStateView(gs, 0)

	assert.Equal(t, "m-1", sv.MatchID)
	assert.False(t, sv.IsYourTurn)
	assert.Equal(t, "Action", sv.Phase)

	assert.Equal(t, "KANE", sv.You.Superstar)
	assert.Equal(t, 4, sv.You.Fortitude)
	require.Len(t, sv.You.Hand, 2)
	assert.Equal(t, "Chop", sv.You.Hand[0].Title)
	assert.Equal(t, 1, sv.You.Hand[1].Index)
	assert.Equal(t, 1, sv.You.ArsenalCount)
	assert.Equal(t, []string{"Rolling Takedown"}, sv.You.Ringside)

	assert.Equal(t, "THE ROCK", sv.Opponent.Superstar)
	assert.Equal(t, 1, sv.Opponent.HandCount)
	assert.Empty(t, sv.Opponent.Hand)
	assert.Equal(t, []string{"Chop"}, sv.Opponent.RingArea)

	other := BuildStateView(gs, 1)
	assert.True(t, other.IsYourTurn)
	require.Len(t, other.You.Hand, 1)
}

func TestBuildStateViewShowsJockeying(t *testing.T) {
	gs := testState()
	gs.TurnCtx.Jockeying = &game.JockeyingModifier{Owner: 1, Effect: game.JockeyingGrappleBonus}
	sv := BuildStateView(gs, 0)
	assert.Contains(t, sv.Jockeying, "P2")
	assert.Contains(t, sv.Jockeying, "Grapple")
}

func TestNewCardView(t *testing.T) {
	gs := testState()
	cv := NewCardView(2, gs.Players[0].Hand[1])
	assert.Equal(t, 2, cv.Index)
	assert.Equal(t, []string{"Reversal"}, cv.Types)
	assert.Equal(t, "#", cv.Damage)
}

func TestFormatCard(t *testing.T) {
	gs := testState()
	assert.Equal(t, "Chop (Maneuver) F:0 D:3 SV:1 [Strike]", FormatCard(gs.Players[0].Hand[0]))
	assert.Equal(t, "(empty)", FormatCard(nil))

	play := game.Play{Card: gs.Players[0].Hand[0], As: catalog.TypeManeuver}
	assert.Equal(t, "Chop (Maneuver) F:0 D:3 SV:1 [Strike] as Maneuver", FormatPlay(play))
	assert.Equal(t, "(none)", FormatPlay(game.Play{}))

	text := FormatCardText(chop)
	assert.Contains(t, text, "Title: Chop")
	assert.Contains(t, text, "Effect: Does 3D.")
}

func TestOptionViews(t *testing.T) {
	actions := []game.Action{{Type: game.ActionShowCards, Desc: "Show cards"}, {Type: game.ActionEndTurn}}
	views := ActionViews(actions)
	require.Len(t, views, 2)
	assert.Equal(t, OptionView{Index: 1, Desc: "End Turn"}, views[1])

	zones := ZoneViews([]game.ZoneRef{{Player: 0, Zone: game.ZoneHand, Desc: "My hand"}})
	assert.Equal(t, "My hand", zones[0].Desc)

	jv := JockeyingViews()
	require.Len(t, jv, 2)
	assert.Contains(t, jv[1].Desc, "8F")
}

func TestNewEventView(t *testing.T) {
	ev := NewEventView(log.NewWinEvent(7, 1, "KANE"))
	assert.Equal(t, 7, ev.Turn)
	assert.Equal(t, 1, ev.Player)
	assert.Equal(t, log.EventWin.String(), ev.Type)
	assert.Equal(t, "KANE wins!", ev.Details)
}

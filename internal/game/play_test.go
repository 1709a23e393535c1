package game

import (
	"testing"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

func TestOfferedPlaysRespectFortitude(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, _ := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	giveCard(m, 0, maneuver("Cheap", catalog.SubtypeStrike, 0, 2, 1))
	giveCard(m, 0, maneuver("Mid", catalog.SubtypeGrapple, 4, 3, 1))
	giveCard(m, 0, maneuver("Pricey", catalog.SubtypeGrapple, 9, 6, 2))
	giveCard(m, 0, jockeyingCard())
	giveCard(m, 0, reversalCard("Step Aside", catalog.SubtypeReversalStrike, 0, catalog.Damage{}))
	dual := &catalog.Card{
		Title: "Both Ways",
		Types: []catalog.CardType{catalog.TypeManeuver, catalog.TypeAction},
	}
	giveCard(m, 0, dual)

	for _, fortitude := range []int{0, 4, 9, 20} {
		m.State.Players[0].Fortitude = fortitude
		plays := m.offeredPlays(0)
		for _, p := range plays {
			if p.Card.Card.Fortitude > fortitude {
				t.Fatalf("fortitude %d: offered %s costing %d", fortitude, p, p.Card.Card.Fortitude)
			}
			if p.As == catalog.TypeReversal {
				t.Fatalf("fortitude %d: reversal offered as a play type: %s", fortitude, p)
			}
			if m.State.Players[0].Hand[p.HandIndex] != p.Card {
				t.Fatalf("hand index of %s is wrong", p)
			}
		}
	}

	m.State.Players[0].Fortitude = 0
	plays := m.offeredPlays(0)
	var titles []string
	for _, p := range plays {
		titles = append(titles, p.Card.Card.Title+"/"+p.As.String())
	}
	want := []string{"Cheap/Maneuver", "Jockeying for Position/Action", "Both Ways/Maneuver", "Both Ways/Action"}
	if len(titles) != len(want) {
		t.Fatalf("expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, titles)
		}
	}
}

// Fortitude 5, a card costing 5 with 2 damage: two overturns, fortitude 7,
// and the turn stays with the attacker.
func TestPlayGrowsFortitudeByDamage(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	m.State.Players[0].Fortitude = 5
	giveCard(m, 0, maneuver("Power Move", catalog.SubtypeStrike, 5, 2, 0))

	out, err := m.resolvePlay(0, playOf(t, m, 0, "Power Move", catalog.TypeManeuver))
	if err != nil {
		t.Fatal(err)
	}
	if out != OutcomeContinue {
		t.Fatalf("expected turn to continue, got %s", out)
	}
	if got := m.State.Players[0].Fortitude; got != 7 {
		t.Fatalf("expected fortitude 7, got %d", got)
	}
	if got := len(logger.EventsOfType(log.EventOverturn)); got != 2 {
		t.Fatalf("expected 2 overturns, got %d", got)
	}
	if len(m.State.Players[1].Ringside) != 2 || len(m.State.Players[0].RingArea) != 1 {
		t.Fatal("expected 2 cards ringside and the maneuver in the ring area")
	}
}

func TestEffectRunsBeforeDamage(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	headButt := maneuver("Head Butt", catalog.SubtypeStrike, 0, 2, 1)
	headButt.EffectID = "Head Butt"
	giveCard(m, 0, headButt)
	giveCard(m, 0, fillerCard)

	if _, err := m.resolvePlay(0, playOf(t, m, 0, "Head Butt", catalog.TypeManeuver)); err != nil {
		t.Fatal(err)
	}

	var order []log.EventType
	for _, e := range logger.Events() {
		if e.Type == log.EventDiscard || e.Type == log.EventOverturn {
			order = append(order, e.Type)
		}
	}
	if len(order) != 3 || order[0] != log.EventDiscard {
		t.Fatalf("expected discard before overturns, got %v", order)
	}
	if m.State.Players[0].HandCount() != 0 {
		t.Fatal("expected the filler to be discarded")
	}
}

func TestDiscardOnPlayGoesRingside(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddAmount(2)
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, p0, NewScriptedController(t, "P2"))
	giveCard(m, 0, actionCard("Offer Handshake", 0, "Offer Handshake"))

	out, err := m.resolvePlay(0, playOf(t, m, 0, "Offer Handshake", catalog.TypeAction))
	if err != nil || out != OutcomeContinue {
		t.Fatalf("unexpected result %s, %v", out, err)
	}
	p := m.State.Players[0]
	if len(p.RingArea) != 0 {
		t.Fatal("discard-on-play card should not stay in the ring area")
	}
	// Handshake itself plus the card discarded after drawing two.
	if len(p.Ringside) != 2 || p.HandCount() != 1 {
		t.Fatalf("expected 2 ringside and 1 in hand, got %d/%d", len(p.Ringside), p.HandCount())
	}
	if len(logger.EventsOfType(log.EventOverturn)) != 0 {
		t.Fatal("actions deal no direct damage")
	}
}

func TestDispatchMissContinues(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	odd := maneuver("Mystery Move", catalog.SubtypeStrike, 0, 1, 0)
	odd.EffectID = "not in the table"
	giveCard(m, 0, odd)

	out, err := m.resolvePlay(0, playOf(t, m, 0, "Mystery Move", catalog.TypeManeuver))
	if err != nil || out != OutcomeContinue {
		t.Fatalf("unexpected result %s, %v", out, err)
	}
	if len(logger.EventsOfType(log.EventNoEffect)) != 1 {
		t.Fatal("expected a no-effect event")
	}
	if len(logger.EventsOfType(log.EventOverturn)) != 1 {
		t.Fatal("damage should still apply after a dispatch miss")
	}
}

func TestJockeyingGrappleBonus(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddJockeying(JockeyingGrappleBonus)
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, p0, NewScriptedController(t, "P2"))
	giveCard(m, 0, jockeyingCard())
	giveCard(m, 0, maneuver("Body Slam", catalog.SubtypeGrapple, 0, 3, 1))

	if _, err := m.resolvePlay(0, playOf(t, m, 0, "Jockeying for Position", catalog.TypeAction)); err != nil {
		t.Fatal(err)
	}
	mod := m.State.TurnCtx.Jockeying
	if mod == nil || mod.Owner != 0 || mod.Effect != JockeyingGrappleBonus {
		t.Fatalf("expected pending grapple bonus for player 0, got %+v", mod)
	}

	if _, err := m.resolvePlay(0, playOf(t, m, 0, "Body Slam", catalog.TypeManeuver)); err != nil {
		t.Fatal(err)
	}
	if got := len(logger.EventsOfType(log.EventOverturn)); got != 3+GrappleBonus {
		t.Fatalf("expected %d overturns, got %d", 3+GrappleBonus, got)
	}
	if m.State.TurnCtx.Jockeying != nil {
		t.Fatal("modifier should be consumed by the next play")
	}
	if m.State.Players[0].Fortitude != 3+GrappleBonus {
		t.Fatalf("fortitude should include the bonus damage, got %d", m.State.Players[0].Fortitude)
	}
}

func TestJockeyingBonusIgnoresNonGrapple(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, logger := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	m.State.TurnCtx.Jockeying = &JockeyingModifier{Owner: 0, Effect: JockeyingGrappleBonus}
	giveCard(m, 0, maneuver("Chop", catalog.SubtypeStrike, 0, 3, 1))

	if _, err := m.resolvePlay(0, playOf(t, m, 0, "Chop", catalog.TypeManeuver)); err != nil {
		t.Fatal(err)
	}
	if got := len(logger.EventsOfType(log.EventOverturn)); got != 3 {
		t.Fatalf("strike should not get the grapple bonus, got %d overturns", got)
	}
	if m.State.TurnCtx.Jockeying != nil {
		t.Fatal("any new play clears the pending modifier")
	}
	if m.State.Players[0].HandCount() != 0 {
		t.Fatal("hand should be empty")
	}
	// The catalog definition is never mutated.
	if m.State.Players[0].RingArea[0].Card.Damage.Value != 3 {
		t.Fatal("catalog damage changed")
	}
}

func TestModifierClearedAtOwnersTurnEnd(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	m, _ := newTestMatch(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))

	// Owned by the defender: survives the active player's turn end.
	m.State.TurnCtx.Jockeying = &JockeyingModifier{Owner: 1, Effect: JockeyingGrappleBonus}
	m.turnEnd()
	if m.State.TurnCtx.Jockeying == nil {
		t.Fatal("defender's modifier should survive into the defender's turn")
	}

	m.State.TurnCtx.Jockeying = &JockeyingModifier{Owner: 0, Effect: JockeyingFortitudePenalty}
	m.turnEnd()
	if m.State.TurnCtx.Jockeying != nil {
		t.Fatal("owner's modifier should be cleared at the owner's turn end")
	}
}

func TestPlayCardIgnoresOutOfRangeChoice(t *testing.T) {
	cfg := MatchConfig{
		Deck0: makePaddedDeck(nil, 60),
		Deck1: makePaddedDeck(nil, 60),
	}
	p0 := NewScriptedController(t, "P1")
	m, logger := newTestMatch(t, cfg, p0, NewScriptedController(t, "P2"))
	giveCard(m, 0, maneuver("Chop", catalog.SubtypeStrike, 0, 3, 1))

	// No pending scripted play: ChoosePlay answers -1.
	out, err := m.playCard(0)
	if err != nil || out != OutcomeContinue {
		t.Fatalf("unexpected result %s, %v", out, err)
	}
	if m.State.Players[0].HandCount() != 1 || len(logger.Events()) != 0 {
		t.Fatal("no selection must not change state")
	}
}

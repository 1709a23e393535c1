package game

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script.
// Used in tests to deterministically drive the match.
type ScriptedController struct {
	t    *testing.T
	name string

	actions []ScriptedAction
	pos     int
	pending *ScriptedAction // play chosen by the last ChooseAction

	// For ChooseReversal prompts: title to reverse with, "" declines
	reversals   []string
	reversalPos int

	// For ChooseCards prompts
	cardChoices []ScriptedCardChoice
	cardPos     int

	// For ChooseAmount prompts
	amounts   []int
	amountPos int

	// For ChooseJockeying prompts
	jockeying    []JockeyingEffect
	jockeyingPos int

	// For ChooseYesNo prompts
	yesNoChoices []bool
	yesNoPos     int

	// For ChooseZone prompts
	zones   []int
	zonePos int

	notified []log.GameEvent
	onNotify func(event log.GameEvent)
}

type ScriptedAction struct {
	// Match by ActionType
	Type ActionType
	// For ActionPlayCard: card title and play type
	CardName string
	As       catalog.CardType
}

type ScriptedCardChoice struct {
	// Choose cards by title
	Names []string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType})
	return sc
}

func (sc *ScriptedController) AddPlay(cardName string, as catalog.CardType) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionPlayCard, CardName: cardName, As: as})
	return sc
}

func (sc *ScriptedController) AddReversal(title string) *ScriptedController {
	sc.reversals = append(sc.reversals, title)
	return sc
}

func (sc *ScriptedController) AddCardChoice(names ...string) *ScriptedController {
	sc.cardChoices = append(sc.cardChoices, ScriptedCardChoice{Names: names})
	return sc
}

func (sc *ScriptedController) AddAmount(n int) *ScriptedController {
	sc.amounts = append(sc.amounts, n)
	return sc
}

func (sc *ScriptedController) AddJockeying(effect JockeyingEffect) *ScriptedController {
	sc.jockeying = append(sc.jockeying, effect)
	return sc
}

func (sc *ScriptedController) AddYesNo(answer bool) *ScriptedController {
	sc.yesNoChoices = append(sc.yesNoChoices, answer)
	return sc
}

func (sc *ScriptedController) AddZone(index int) *ScriptedController {
	sc.zones = append(sc.zones, index)
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	if sc.pos < len(sc.actions) {
		// Peek at next scripted action; consume it only if it is offered.
		// This allows scripts to span multiple turns without scripting "EndTurn".
		scripted := sc.actions[sc.pos]
		for _, a := range actions {
			if a.Type != scripted.Type {
				continue
			}
			if scripted.Type == ActionPlayCard && !sc.hasPlay(state, scripted) {
				break
			}
			sc.pos++
			sc.pending = &scripted
			return a, nil
		}
	}

	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

// hasPlay reports whether the scripted card is in the turn player's hand and affordable.
func (sc *ScriptedController) hasPlay(state *GameState, scripted ScriptedAction) bool {
	p := state.Players[state.TurnPlayer]
	for _, c := range p.Hand {
		if c.Card.Title == scripted.CardName && c.Card.HasType(scripted.As) && c.Card.Fortitude <= p.Fortitude {
			return true
		}
	}
	return false
}

func (sc *ScriptedController) ChoosePlay(ctx context.Context, state *GameState, plays []Play) (int, error) {
	if sc.pending == nil {
		return -1, nil
	}
	want := *sc.pending
	sc.pending = nil
	for i, p := range plays {
		if p.Card.Card.Title == want.CardName && p.As == want.As {
			return i, nil
		}
	}
	sc.t.Errorf("[%s] play %s as %s not offered", sc.name, want.CardName, want.As)
	return -1, nil
}

func (sc *ScriptedController) ChooseReversal(ctx context.Context, state *GameState, attack Play, candidates []*CardInstance) (int, error) {
	if sc.reversalPos >= len(sc.reversals) {
		return -1, nil
	}
	title := sc.reversals[sc.reversalPos]
	sc.reversalPos++
	for i, c := range candidates {
		if c.Card.Title == title {
			return i, nil
		}
	}
	return -1, nil
}

func (sc *ScriptedController) ChooseZone(ctx context.Context, state *GameState, zones []ZoneRef) (int, error) {
	if sc.zonePos >= len(sc.zones) {
		return 0, nil
	}
	idx := sc.zones[sc.zonePos]
	sc.zonePos++
	return idx, nil
}

func (sc *ScriptedController) ChooseAmount(ctx context.Context, state *GameState, prompt string, max int) (int, error) {
	if sc.amountPos >= len(sc.amounts) {
		return 0, nil
	}
	n := sc.amounts[sc.amountPos]
	sc.amountPos++
	return n, nil
}

func (sc *ScriptedController) ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error) {
	if sc.cardPos >= len(sc.cardChoices) {
		// Default: choose the first min candidates
		if min > len(candidates) {
			min = len(candidates)
		}
		return candidates[:min], nil
	}

	choice := sc.cardChoices[sc.cardPos]
	sc.cardPos++

	var result []*CardInstance
	used := make(map[int]bool)
	for _, name := range choice.Names {
		for _, c := range candidates {
			if c.Card.Title == name && !used[c.ID] {
				used[c.ID] = true
				result = append(result, c)
				break
			}
		}
	}
	return result, nil
}

func (sc *ScriptedController) ChooseJockeying(ctx context.Context, state *GameState) (JockeyingEffect, error) {
	if sc.jockeyingPos >= len(sc.jockeying) {
		return JockeyingGrappleBonus, nil
	}
	e := sc.jockeying[sc.jockeyingPos]
	sc.jockeyingPos++
	return e, nil
}

func (sc *ScriptedController) ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error) {
	if sc.yesNoPos >= len(sc.yesNoChoices) {
		return false, nil
	}
	answer := sc.yesNoChoices[sc.yesNoPos]
	sc.yesNoPos++
	return answer, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.notified = append(sc.notified, event)
	if sc.onNotify != nil {
		sc.onNotify(event)
	}
	return nil
}

// --- Test card helpers ---

func maneuver(title, subtype string, fortitude, damage, stun int) *catalog.Card {
	c := &catalog.Card{
		Title:     title,
		Types:     []catalog.CardType{catalog.TypeManeuver},
		Fortitude: fortitude,
		Damage:    catalog.Damage{Value: damage},
		StunValue: stun,
	}
	if subtype != "" {
		c.Subtypes = []string{subtype}
	}
	return c
}

func actionCard(title string, fortitude int, effectID string) *catalog.Card {
	return &catalog.Card{
		Title:     title,
		Types:     []catalog.CardType{catalog.TypeAction},
		Fortitude: fortitude,
		EffectID:  effectID,
	}
}

func reversalCard(title, subtype string, fortitude int, damage catalog.Damage) *catalog.Card {
	return &catalog.Card{
		Title:     title,
		Types:     []catalog.CardType{catalog.TypeReversal},
		Subtypes:  []string{subtype},
		Fortitude: fortitude,
		Damage:    damage,
	}
}

func jockeyingCard() *catalog.Card {
	return &catalog.Card{
		Title:    "Jockeying for Position",
		Types:    []catalog.CardType{catalog.TypeAction, catalog.TypeReversal},
		Subtypes: []string{catalog.SubtypeReversalSpecial},
		EffectID: "Jockeying for Position",
	}
}

func superstar(name string, handSize, value int, ability catalog.AbilityID) *catalog.Superstar {
	return &catalog.Superstar{Name: name, Logo: name, HandSize: handSize, Value: value, Ability: ability}
}

var fillerCard = maneuver("Filler", "", 99, 0, 0)

// makePaddedDeck creates a deck with specified cards on top and filler to reach size.
// topCards index 0 is the arsenal top (drawn first).
func makePaddedDeck(topCards []*catalog.Card, size int) []*catalog.Card {
	deck := make([]*catalog.Card, 0, size)
	deck = append(deck, topCards...)
	for len(deck) < size {
		deck = append(deck, fillerCard)
	}
	return deck
}

// newTestMatch builds a match with starting hands drawn, ready for direct
// calls into the resolution pipeline.
func newTestMatch(t *testing.T, cfg MatchConfig, p0, p1 *ScriptedController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.Diag = zaptest.NewLogger(t)
	if cfg.Superstar0 == nil {
		cfg.Superstar0 = superstar("HHH", 0, 3, catalog.AbilityNone)
	}
	if cfg.Superstar1 == nil {
		cfg.Superstar1 = superstar("KANE", 0, 2, catalog.AbilityNone)
	}
	m := NewMatch(cfg, p0, p1)
	if err := m.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	m.State.Turn = 1
	m.State.Phase = PhaseAction
	return m, logger
}

// giveCard puts a new instance of card into player's hand.
func giveCard(m *Match, player int, card *catalog.Card) *CardInstance {
	ci := m.State.CreateCardInstance(card, player)
	ci.Zone = ZoneHand
	m.State.Players[player].Hand = append(m.State.Players[player].Hand, ci)
	return ci
}

// playOf finds the offered play of title as t.
func playOf(t *testing.T, m *Match, player int, title string, as catalog.CardType) Play {
	t.Helper()
	for _, p := range m.offeredPlays(player) {
		if p.Card.Card.Title == title && p.As == as {
			return p
		}
	}
	t.Fatalf("%s as %s not offered to player %d", title, as, player)
	return Play{}
}

// runMatchToCompletion runs a match and returns it with its logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 *ScriptedController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.Diag = zaptest.NewLogger(t)
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100 // reasonable default for tests
	}

	m := NewMatch(cfg, p0, p1)

	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, m.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return m, logger
}

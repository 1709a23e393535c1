package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// Ability is a superstar ability. Passive parts are flags read by the engine;
// triggered and activated parts are hooks.
type Ability struct {
	ID   catalog.AbilityID
	Name string

	// OnTurnStart runs in the ability phase of its owner's turn.
	OnTurnStart func(m *Match, player int) (Outcome, error)

	// CanActivate checks whether the activated ability can currently be used.
	CanActivate func(m *Match, player int) bool

	// Resolve applies the activated ability.
	Resolve func(m *Match, player int) (Outcome, error)

	ExtraDraw     bool // draws a second card in the draw phase
	ReducesDamage bool // opponent damage is reduced by 1
}

// errAbilityAbandoned stops an activated ability whose cost was not paid.
// Nothing has changed when it is returned, so the ability stays available.
var errAbilityAbandoned = errors.New("ability abandoned")

var abilityRegistry = map[catalog.AbilityID]*Ability{
	catalog.AbilityOverturnOpponent: {
		ID:          catalog.AbilityOverturnOpponent,
		Name:        "opponent overturns the top card of the arsenal",
		OnTurnStart: overturnOpponent,
	},
	catalog.AbilityRecoverToArsenal: {
		ID:          catalog.AbilityRecoverToArsenal,
		Name:        "put a ringside card on the bottom of the arsenal",
		OnTurnStart: recoverToArsenal,
	},
	catalog.AbilityDiscardRecover: {
		ID:   catalog.AbilityDiscardRecover,
		Name: "discard 2 cards to put 1 ringside card into hand",
		CanActivate: func(m *Match, player int) bool {
			return m.State.Players[player].HandCount() >= 2
		},
		Resolve: discardRecover,
	},
	catalog.AbilityMutualDiscard: {
		ID:   catalog.AbilityMutualDiscard,
		Name: "discard 1 card, opponent discards 1 card",
		CanActivate: func(m *Match, player int) bool {
			return m.State.Players[player].HandCount() >= 1
		},
		Resolve: mutualDiscard,
	},
	catalog.AbilityDrawReturn: {
		ID:   catalog.AbilityDrawReturn,
		Name: "draw 1 card, then put 1 card from hand on top of the arsenal",
		CanActivate: func(m *Match, player int) bool {
			return m.State.Players[player].ArsenalCount() >= 1
		},
		Resolve: drawReturn,
	},
	catalog.AbilityResilient: {
		ID:            catalog.AbilityResilient,
		Name:          "draws 2 cards, takes 1 less damage",
		ExtraDraw:     true,
		ReducesDamage: true,
	},
}

func abilityFor(id catalog.AbilityID) *Ability {
	return abilityRegistry[id]
}

// canUseAbility reports whether the activated ability may be offered now.
func (m *Match) canUseAbility(player int) bool {
	ab := m.abilities[player]
	if ab == nil || ab.Resolve == nil || m.State.TurnCtx.AbilityUsed {
		return false
	}
	return ab.CanActivate == nil || ab.CanActivate(m, player)
}

// useAbility resolves player's activated ability once per turn.
func (m *Match) useAbility(player int) (Outcome, error) {
	if !m.canUseAbility(player) {
		return OutcomeContinue, nil
	}
	gs := m.State
	gs.TurnCtx.AbilityUsed = true
	ab := m.abilities[player]
	m.log(log.NewAbilityEvent(gs.Turn, gs.Phase.String(), player, m.name(player), ab.Name))
	out, err := ab.Resolve(m, player)
	if errors.Is(err, errAbilityAbandoned) {
		gs.TurnCtx.AbilityUsed = false
		m.Diag.Warn("ability abandoned", zap.Int("player", player), zap.String("ability", ab.Name))
		return OutcomeContinue, nil
	}
	return out, err
}

func overturnOpponent(m *Match, player int) (Outcome, error) {
	gs := m.State
	m.log(log.NewAbilityEvent(gs.Turn, gs.Phase.String(), player, m.name(player), m.abilities[player].Name))
	return m.applyDamage(damageRequest{
		Source: player,
		Target: gs.Opponent(player),
		Amount: 1,
	})
}

func recoverToArsenal(m *Match, player int) (Outcome, error) {
	gs := m.State
	p := gs.Players[player]
	if len(p.Ringside) == 0 || gs.TurnCtx.AbilityUsed {
		return OutcomeContinue, nil
	}
	yes, err := m.Controllers[player].ChooseYesNo(m.ctx, gs, "Use your ability to put a ringside card on the bottom of your arsenal?")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("choose ability: %w", err)
	}
	if !yes {
		return OutcomeContinue, nil
	}
	gs.TurnCtx.AbilityUsed = true
	m.log(log.NewAbilityEvent(gs.Turn, gs.Phase.String(), player, m.name(player), m.abilities[player].Name))
	return OutcomeContinue, m.recover(player, 1)
}

func discardRecover(m *Match, player int) (Outcome, error) {
	done, err := m.discard(player, player, 2)
	if err != nil {
		return OutcomeContinue, err
	}
	if !done {
		return OutcomeContinue, errAbilityAbandoned
	}
	gs := m.State
	p := gs.Players[player]
	if len(p.Ringside) == 0 {
		return OutcomeContinue, nil
	}
	chosen, err := m.Controllers[player].ChooseCards(m.ctx, gs, "Choose 1 card from your ringside pile to put into your hand", p.Ringside, 1, 1)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("choose recover: %w", err)
	}
	cards, ok := validSelection(chosen, p.Ringside, 1, 1)
	if !ok {
		m.Diag.Warn("invalid recover selection, skipping", zap.Int("player", player))
		return OutcomeContinue, nil
	}
	p.RecoverToHand(cards[0])
	m.log(log.NewRecoverEvent(gs.Turn, gs.Phase.String(), player, m.name(player), cards[0].Card.Title, "hand"))
	return OutcomeContinue, nil
}

func mutualDiscard(m *Match, player int) (Outcome, error) {
	done, err := m.discard(player, player, 1)
	if err != nil {
		return OutcomeContinue, err
	}
	if !done {
		return OutcomeContinue, errAbilityAbandoned
	}
	opp := m.State.Opponent(player)
	_, err = m.discard(opp, opp, 1)
	return OutcomeContinue, err
}

func drawReturn(m *Match, player int) (Outcome, error) {
	if out := m.drawCards(player, 1); out != OutcomeContinue {
		return out, nil
	}
	gs := m.State
	p := gs.Players[player]
	drawn := p.Hand[len(p.Hand)-1]
	chosen, err := m.Controllers[player].ChooseCards(m.ctx, gs, "Choose 1 card from your hand to put on top of your arsenal", p.Hand, 1, 1)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("choose return: %w", err)
	}
	returned := drawn
	if cards, ok := validSelection(chosen, p.Hand, 1, 1); ok {
		returned = cards[0]
	} else {
		// The hand never grows: the drawn card goes back.
		m.Diag.Warn("invalid return selection, returning the drawn card", zap.Int("player", player))
	}
	p.ReturnToArsenal(returned)
	m.log(log.NewReturnToArsenalEvent(gs.Turn, gs.Phase.String(), player, m.name(player), returned.Card.Title))
	return OutcomeContinue, nil
}

package game

import (
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// damageRequest describes one application of damage.
type damageRequest struct {
	Source int
	Target int
	Amount int

	// Attack is the maneuver dealing the damage. Only maneuver damage can be
	// reversed by an overturned card.
	Attack *resolution

	SelfInflicted  bool
	FromReversal   bool
	GainsFortitude bool // source's fortitude grows by the unreduced amount
	Reducible      bool // subject to the target's damage reduction
}

// applyDamage overturns one arsenal card per point of damage. Each overturned
// card may reverse a maneuver, which skips the rest of the damage and ends the
// turn. An empty arsenal ends the match for the target.
func (m *Match) applyDamage(req damageRequest) (Outcome, error) {
	gs := m.State
	phase := gs.Phase.String()
	target := gs.Players[req.Target]

	amount := req.Amount
	if req.GainsFortitude && req.Source != req.Target && amount > 0 {
		gs.Players[req.Source].Fortitude += amount
	}
	if req.Reducible && req.Source != req.Target && m.reducesDamage(req.Target) && amount > 0 {
		amount--
	}
	if amount <= 0 {
		return OutcomeContinue, nil
	}

	if req.SelfInflicted {
		m.log(log.NewSelfDamageEvent(gs.Turn, phase, req.Target, m.name(req.Target), amount))
	} else {
		m.log(log.NewDamageIncomingEvent(gs.Turn, phase, req.Target, m.name(req.Target), amount))
	}

	canReverse := req.Attack != nil && !req.SelfInflicted && !req.FromReversal
	for i := 1; i <= amount; i++ {
		card := target.Overturn()
		if card == nil {
			return m.declareWinner(gs.Opponent(req.Target), m.name(req.Target)+" has no cards left to overturn"), nil
		}
		m.log(log.NewOverturnEvent(gs.Turn, phase, req.Target, card.Card.Title, i, amount))

		if canReverse && m.canReverse(card, req.Attack, gs.effectiveFortitude(req.Target, req.Attack)) {
			m.log(log.NewReversalFromArsenalEvent(gs.Turn, req.Target, m.name(req.Target), card.Card.Title, req.Attack.Card.Card.Title))
			if out, err := m.stunDraw(req.Attack); err != nil || out == OutcomeMatchOver {
				return out, err
			}
			return OutcomeEndTurn, nil
		}
	}
	return OutcomeContinue, nil
}

// reducesDamage reports whether player's superstar takes one less damage.
func (m *Match) reducesDamage(player int) bool {
	ab := m.abilities[player]
	return ab != nil && ab.ReducesDamage
}

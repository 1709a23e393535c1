package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// canReverse reports whether candidate may reverse the play in res when its
// owner has the given effective fortitude.
func (m *Match) canReverse(candidate *CardInstance, res *resolution, fortitude int) bool {
	card := candidate.Card
	if !card.HasType(catalog.TypeReversal) || card.Fortitude > fortitude {
		return false
	}
	if rule, ok := m.Effects.Reversal(card.Title); ok && rule.Against != "" {
		return rule.matches(res)
	}

	if res.As == catalog.TypeAction {
		return card.HasSubtype(catalog.SubtypeReversalAction)
	}

	attack := res.Card.Card
	switch {
	case card.HasSubtype(catalog.SubtypeReversalStrike) && attack.HasSubtype(catalog.SubtypeStrike):
		return true
	case card.HasSubtype(catalog.SubtypeReversalStrikeSpecial) && attack.HasSubtype(catalog.SubtypeStrike):
		return res.Damage <= SpecialReversalLimit
	case card.HasSubtype(catalog.SubtypeReversalGrapple) && attack.HasSubtype(catalog.SubtypeGrapple):
		return true
	case card.HasSubtype(catalog.SubtypeReversalGrappleSpecial) && attack.HasSubtype(catalog.SubtypeGrapple):
		return res.Damage <= SpecialReversalLimit
	case card.HasSubtype(catalog.SubtypeReversalSubmission) && attack.HasSubtype(catalog.SubtypeSubmission):
		return true
	}
	return false
}

// reversalCandidates returns the defender's hand cards that can reverse res.
func (m *Match) reversalCandidates(res *resolution) []*CardInstance {
	gs := m.State
	fortitude := gs.effectiveFortitude(res.Defender, res)
	var out []*CardInstance
	for _, c := range gs.Players[res.Defender].Hand {
		if m.canReverse(c, res, fortitude) {
			out = append(out, c)
		}
	}
	return out
}

// handReversalWindow lets the defender reverse the play from hand. reversed is
// true when the play was cancelled.
func (m *Match) handReversalWindow(res *resolution) (out Outcome, reversed bool, err error) {
	candidates := m.reversalCandidates(res)
	if len(candidates) == 0 {
		return OutcomeContinue, false, nil
	}
	idx, err := m.Controllers[res.Defender].ChooseReversal(m.ctx, m.State, res.play(), candidates)
	if err != nil {
		return OutcomeContinue, false, fmt.Errorf("choose reversal: %w", err)
	}
	if idx < 0 || idx >= len(candidates) {
		return OutcomeContinue, false, nil
	}
	out, err = m.reverseFromHand(res, candidates[idx])
	return out, true, err
}

// reverseFromHand resolves a hand reversal: the reversal goes to the
// defender's ring area, the attacking card to the attacker's ringside, the
// reversal's ops and damage hit back, and the attacker may take a stun draw.
func (m *Match) reverseFromHand(res *resolution, reversal *CardInstance) (Outcome, error) {
	gs := m.State
	def := gs.Players[res.Defender]
	att := gs.Players[res.Attacker]

	def.RemoveFromHand(reversal)
	def.PutRingArea(reversal)
	att.PutRingside(res.Card)
	m.log(log.NewReversalEvent(gs.Turn, res.Defender, m.name(res.Defender), reversal.Card.Title, res.Card.Card.Title))

	rule, _ := m.Effects.Reversal(reversal.Card.Title)
	if rule != nil {
		if rule.Jockeying {
			if err := m.chooseJockeying(res.Defender); err != nil {
				return OutcomeContinue, err
			}
		}
		out, err := m.runOps(res.Defender, res, rule.Ops)
		if err != nil || out == OutcomeMatchOver {
			return out, err
		}
	}

	if dmg := reversal.Card.Damage.Resolve(res.Damage); dmg > 0 {
		out, err := m.applyDamage(damageRequest{
			Source:         res.Defender,
			Target:         res.Attacker,
			Amount:         dmg,
			FromReversal:   true,
			GainsFortitude: true,
			Reducible:      true,
		})
		if err != nil || out == OutcomeMatchOver {
			return out, err
		}
	}

	if out, err := m.stunDraw(res); err != nil || out == OutcomeMatchOver {
		return out, err
	}

	if rule != nil && rule.EndsTurn {
		m.Diag.Debug("reversal ends the turn", zap.String("reversal", reversal.Card.Title))
		return OutcomeEndTurn, nil
	}
	return OutcomeContinue, nil
}

// stunDraw offers the attacker of a reversed play up to the card's stun value
// in draws, capped by the arsenal.
func (m *Match) stunDraw(res *resolution) (Outcome, error) {
	gs := m.State
	att := gs.Players[res.Attacker]
	limit := min(res.Card.Card.StunValue, att.ArsenalCount())
	if limit <= 0 {
		return OutcomeContinue, nil
	}
	prompt := fmt.Sprintf("%s was reversed. Draw up to %d card(s) for its stun value", res.Card.Card.Title, limit)
	n, err := m.Controllers[res.Attacker].ChooseAmount(m.ctx, gs, prompt, limit)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("choose stun draw: %w", err)
	}
	if n <= 0 || n > limit {
		return OutcomeContinue, nil
	}
	for i := 0; i < n; i++ {
		att.Draw()
	}
	m.log(log.NewStunDrawEvent(gs.Turn, res.Attacker, m.name(res.Attacker), n))
	return OutcomeContinue, nil
}

package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// playTypes are the types a card can be played as. Reversal is never one of them.
var playTypes = []catalog.CardType{catalog.TypeManeuver, catalog.TypeAction}

// offeredPlays lists every hand card once per playable type whose fortitude
// cost the player can afford.
func (m *Match) offeredPlays(player int) []Play {
	p := m.State.Players[player]
	var plays []Play
	for i, c := range p.Hand {
		if c.Card.Fortitude > p.Fortitude {
			continue
		}
		for _, t := range playTypes {
			if c.Card.HasType(t) {
				plays = append(plays, Play{Card: c, As: t, HandIndex: i})
			}
		}
	}
	return plays
}

// playCard asks the player for a play and resolves it.
func (m *Match) playCard(player int) (Outcome, error) {
	plays := m.offeredPlays(player)
	if len(plays) == 0 {
		return OutcomeContinue, nil
	}
	idx, err := m.Controllers[player].ChoosePlay(m.ctx, m.State, plays)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("choose play: %w", err)
	}
	if idx < 0 || idx >= len(plays) {
		return OutcomeContinue, nil
	}
	return m.resolvePlay(player, plays[idx])
}

// resolvePlay runs the card play pipeline: announce, hand reversal window,
// placement, effect ops, then damage.
func (m *Match) resolvePlay(player int, play Play) (Outcome, error) {
	gs := m.State
	p := gs.Players[player]
	card := play.Card

	if !slices.Contains(p.Hand, card) {
		return OutcomeContinue, nil
	}
	m.log(log.NewPlayAttemptEvent(gs.Turn, player, m.name(player), card.Card.Title, play.As.String()))
	p.RemoveFromHand(card)

	// A new play consumes any pending modifier; it only applies to its owner.
	var mod JockeyingModifier
	if pending := gs.TurnCtx.Jockeying; pending != nil {
		if pending.Owner == player {
			mod = *pending
		}
		gs.TurnCtx.Jockeying = nil
	}

	res := &resolution{
		Attacker: player,
		Defender: gs.Opponent(player),
		Card:     card,
		As:       play.As,
		Modifier: mod,
	}
	if play.As == catalog.TypeManeuver {
		res.Damage = card.Card.Damage.Resolve(0)
		if mod.Effect == JockeyingGrappleBonus && card.Card.HasSubtype(catalog.SubtypeGrapple) {
			res.Damage += GrappleBonus
		}
	}

	out, reversed, err := m.handReversalWindow(res)
	if err != nil || reversed {
		return out, err
	}

	entry, miss := m.lookupEffect(card)
	if entry != nil && entry.DiscardOnPlay {
		p.PutRingside(card)
	} else {
		p.PutRingArea(card)
	}
	m.log(log.NewPlaySuccessEvent(gs.Turn, player, m.name(player), card.Card.Title))
	if miss {
		m.log(log.NewNoEffectEvent(gs.Turn, player, card.Card.Title))
	}

	if entry != nil && entry.Jockeying && play.As == catalog.TypeAction {
		if err := m.chooseJockeying(player); err != nil {
			return OutcomeContinue, err
		}
	}
	if entry != nil {
		out, err := m.runOps(player, res, entry.Ops)
		if err != nil || out != OutcomeContinue {
			return out, err
		}
	}

	if play.As == catalog.TypeManeuver && res.Damage > 0 {
		return m.applyDamage(damageRequest{
			Source:         player,
			Target:         res.Defender,
			Amount:         res.Damage,
			Attack:         res,
			GainsFortitude: true,
			Reducible:      true,
		})
	}
	return OutcomeContinue, nil
}

// chooseJockeying asks owner for a Jockeying effect and stores it as the
// pending modifier. An invalid answer leaves no modifier.
func (m *Match) chooseJockeying(owner int) error {
	gs := m.State
	effect, err := m.Controllers[owner].ChooseJockeying(m.ctx, gs)
	if err != nil {
		return fmt.Errorf("choose jockeying: %w", err)
	}
	if effect != JockeyingGrappleBonus && effect != JockeyingFortitudePenalty {
		return nil
	}
	gs.TurnCtx.Jockeying = &JockeyingModifier{Owner: owner, Effect: effect}
	m.log(log.NewJockeyingEvent(gs.Turn, owner, m.name(owner), effect.String()))
	return nil
}

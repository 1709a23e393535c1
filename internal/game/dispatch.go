package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/log"
)

// lookupEffect finds the effect entry of a played card. miss is true when the
// card names an effect id the table does not know: no effect, match continues.
func (m *Match) lookupEffect(card *CardInstance) (entry *EffectEntry, miss bool) {
	id := card.Card.EffectID
	if id == "" {
		return nil, false
	}
	entry, ok := m.Effects.Effect(id)
	if !ok {
		m.Diag.Warn("no effect registered for card",
			zap.String("card", card.Card.Title),
			zap.String("effect_id", id))
		return nil, true
	}
	return entry, false
}

// runOps executes effect ops in order on behalf of self.
func (m *Match) runOps(self int, res *resolution, ops []Op) (Outcome, error) {
	for _, op := range ops {
		out, err := m.runOp(self, res, op)
		if err != nil || out != OutcomeContinue {
			return out, err
		}
	}
	return OutcomeContinue, nil
}

func (m *Match) runOp(self int, res *resolution, op Op) (Outcome, error) {
	gs := m.State
	opp := gs.Opponent(self)

	switch op.Kind {
	case OpDiscard:
		_, err := m.discard(self, self, op.N)
		return OutcomeContinue, err

	case OpOpponentDiscard:
		chooser := opp
		if op.Chooser == ChooserSelf {
			chooser = self
		}
		_, err := m.discard(chooser, opp, op.N)
		return OutcomeContinue, err

	case OpDraw:
		if !op.UpTo {
			return m.drawCards(self, op.N), nil
		}
		limit := min(op.N, gs.Players[self].ArsenalCount())
		if limit == 0 {
			return OutcomeContinue, nil
		}
		n, err := m.Controllers[self].ChooseAmount(m.ctx, gs, fmt.Sprintf("Draw up to %d card(s)", limit), limit)
		if err != nil {
			return OutcomeContinue, fmt.Errorf("choose draw amount: %w", err)
		}
		if n <= 0 || n > limit {
			return OutcomeContinue, nil
		}
		return m.drawCards(self, n), nil

	case OpOpponentDraw:
		return m.drawCards(opp, op.N), nil

	case OpRecover:
		return OutcomeContinue, m.recover(self, op.N)

	case OpSelfDamage:
		return m.applyDamage(damageRequest{
			Source:        self,
			Target:        self,
			Amount:        op.N,
			SelfInflicted: true,
		})
	}

	m.Diag.Warn("unknown effect op", zap.String("op", string(op.Kind)))
	return OutcomeContinue, nil
}

// discard makes owner discard n hand cards (fewer if the hand is short),
// chosen by chooser. done is false when the selection was invalid and nothing
// was discarded.
func (m *Match) discard(chooser, owner, n int) (done bool, err error) {
	gs := m.State
	p := gs.Players[owner]
	n = min(n, p.HandCount())
	if n <= 0 {
		return true, nil
	}
	prompt := fmt.Sprintf("Choose %d card(s) from %s's hand to discard", n, m.name(owner))
	chosen, err := m.Controllers[chooser].ChooseCards(m.ctx, gs, prompt, p.Hand, n, n)
	if err != nil {
		return false, fmt.Errorf("choose discard: %w", err)
	}
	cards, ok := validSelection(chosen, p.Hand, n, n)
	if !ok {
		m.Diag.Warn("invalid discard selection, skipping", zap.Int("player", owner), zap.Int("want", n), zap.Int("got", len(chosen)))
		return false, nil
	}
	for _, c := range cards {
		p.Discard(c)
		m.log(log.NewDiscardEvent(gs.Turn, gs.Phase.String(), owner, m.name(owner), c.Card.Title))
	}
	return true, nil
}

// recover moves up to n ringside cards of player to the bottom of the arsenal.
func (m *Match) recover(player, n int) error {
	gs := m.State
	p := gs.Players[player]
	n = min(n, len(p.Ringside))
	if n <= 0 {
		return nil
	}
	prompt := fmt.Sprintf("Choose up to %d card(s) from your ringside pile to recover", n)
	chosen, err := m.Controllers[player].ChooseCards(m.ctx, gs, prompt, p.Ringside, 0, n)
	if err != nil {
		return fmt.Errorf("choose recover: %w", err)
	}
	cards, ok := validSelection(chosen, p.Ringside, 0, n)
	if !ok {
		m.Diag.Warn("invalid recover selection, skipping", zap.Int("player", player))
		return nil
	}
	for _, c := range cards {
		p.RecoverToArsenal(c)
		m.log(log.NewRecoverEvent(gs.Turn, gs.Phase.String(), player, m.name(player), c.Card.Title, "arsenal bottom"))
	}
	return nil
}

// validSelection checks that chosen is a duplicate-free subset of candidates
// with a size in [min, max]. The returned slice is a copy safe to iterate
// while mutating zones.
func validSelection(chosen, candidates []*CardInstance, min, max int) ([]*CardInstance, bool) {
	if len(chosen) < min || len(chosen) > max {
		return nil, false
	}
	allowed := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		allowed[c.ID] = true
	}
	seen := make(map[int]bool, len(chosen))
	out := make([]*CardInstance, 0, len(chosen))
	for _, c := range chosen {
		if c == nil || !allowed[c.ID] || seen[c.ID] {
			return nil, false
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, true
}

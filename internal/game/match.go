package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// PlayerController is the interface every seat implements (console, MCP, tests).
// Out-of-range answers are treated as "no selection".
type PlayerController interface {
	// ChooseAction presents the action loop menu and waits for the player to pick one.
	ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error)

	// ChooseZone asks which zone to inspect. Returns an index into zones.
	ChooseZone(ctx context.Context, state *GameState, zones []ZoneRef) (int, error)

	// ChoosePlay asks which offered play to make. Returns an index into plays, or -1.
	ChoosePlay(ctx context.Context, state *GameState, plays []Play) (int, error)

	// ChooseReversal asks the defender whether to reverse attack. Returns an
	// index into candidates, or -1 to decline.
	ChooseReversal(ctx context.Context, state *GameState, attack Play, candidates []*CardInstance) (int, error)

	// ChooseAmount asks for a number in 0..max (e.g., stun value draws).
	ChooseAmount(ctx context.Context, state *GameState, prompt string, max int) (int, error)

	// ChooseCards asks the player to select cards from a list (discards, recovery).
	ChooseCards(ctx context.Context, state *GameState, prompt string, candidates []*CardInstance, min, max int) ([]*CardInstance, error)

	// ChooseJockeying asks which Jockeying for Position effect to apply.
	ChooseJockeying(ctx context.Context, state *GameState) (JockeyingEffect, error)

	// ChooseYesNo asks the player a yes/no question (e.g., optional abilities).
	ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error)

	// Notify sends a match event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Deck0      []*catalog.Card // player 0's deck, first card is the arsenal top
	Deck1      []*catalog.Card // player 1's deck
	Superstar0 *catalog.Superstar
	Superstar1 *catalog.Superstar
	Logger     log.EventLogger
	Diag       *zap.Logger  // operational diagnostics (nil = no-op)
	Effects    *EffectTable // nil = built-in table
	Shuffle    bool         // shuffle arsenals before the starting hands
	Seed       int64        // RNG seed for shuffling (0 = time based)
	MaxTurns   int          // stop after this many turns (0 = no limit)
	MatchID    string       // generated when empty
}

// Match orchestrates an entire match between two players.
type Match struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	Diag        *zap.Logger
	Effects     *EffectTable
	abilities   [2]*Ability
	ctx         context.Context
	shuffle     bool
	rng         *rand.Rand
	maxTurns    int
	setupDone   bool
}

// NewMatch creates a new match from the given config and player controllers.
func NewMatch(cfg MatchConfig, p0, p1 PlayerController) *Match {
	gs := NewGameState(cfg.Superstar0, cfg.Superstar1)
	gs.MatchID = cfg.MatchID
	if gs.MatchID == "" {
		gs.MatchID = uuid.NewString()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	diag := cfg.Diag
	if diag == nil {
		diag = zap.NewNop()
	}
	diag = diag.With(zap.String("match_id", gs.MatchID))
	effects := cfg.Effects
	if effects == nil {
		effects = DefaultEffects()
	}

	// Build arsenals as CardInstances; deck index 0 ends up on top.
	for p, deck := range [2][]*catalog.Card{cfg.Deck0, cfg.Deck1} {
		player := gs.Players[p]
		player.Arsenal = make([]*CardInstance, 0, len(deck))
		for i := len(deck) - 1; i >= 0; i-- {
			player.Arsenal = append(player.Arsenal, gs.CreateCardInstance(deck[i], p))
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Match{
		State:       gs,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		Diag:        diag,
		Effects:     effects,
		ctx:         context.Background(),
		shuffle:     cfg.Shuffle,
		rng:         rand.New(rand.NewSource(seed)),
		maxTurns:    cfg.MaxTurns,
	}
	for p, s := range [2]*catalog.Superstar{cfg.Superstar0, cfg.Superstar1} {
		if s == nil {
			continue
		}
		m.abilities[p] = abilityFor(s.Ability)
		if m.abilities[p] == nil && s.Ability != catalog.AbilityNone {
			diag.Warn("unknown superstar ability", zap.String("superstar", s.Name), zap.String("ability", string(s.Ability)))
		}
	}
	return m
}

// Run executes the entire match loop. Returns the winner (0, 1, or -1 for none).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	gs := m.State

	if err := m.setup(); err != nil {
		return -1, err
	}

	for !gs.Over {
		if m.maxTurns > 0 && gs.Turn >= m.maxTurns {
			gs.Over = true
			gs.Winner = -1
			gs.Result = fmt.Sprintf("Turn limit reached (%d turns)", m.maxTurns)
			m.log(log.NewTurnLimitEvent(gs.Turn))
			break
		}
		if err := m.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := m.ctx.Err(); err != nil {
			return -1, err
		}
	}

	m.Diag.Info("match finished", zap.Int("winner", gs.Winner), zap.Int("turns", gs.Turn), zap.String("result", gs.Result))
	return gs.Winner, nil
}

// setup shuffles (when enabled), draws starting hands and picks the first player.
func (m *Match) setup() error {
	if m.setupDone {
		return nil
	}
	m.setupDone = true
	gs := m.State

	for p := 0; p < 2; p++ {
		if gs.Players[p].Superstar == nil {
			return fmt.Errorf("player %d has no superstar", p)
		}
	}
	if m.shuffle {
		gs.Players[0].ShuffleArsenal(m.rng)
		gs.Players[1].ShuffleArsenal(m.rng)
	}

	for p := 0; p < 2; p++ {
		player := gs.Players[p]
		for i := 0; i < player.Superstar.HandSize; i++ {
			if player.Draw() == nil {
				return fmt.Errorf("player %d has insufficient cards for starting hand", p)
			}
		}
	}

	// Higher superstar value goes first; ties go to player one.
	gs.TurnPlayer = 0
	if gs.Players[1].Superstar.Value > gs.Players[0].Superstar.Value {
		gs.TurnPlayer = 1
	}
	return nil
}

// runTurn executes a single turn for the current turn player.
func (m *Match) runTurn() error {
	gs := m.State
	tp := gs.TurnPlayer
	gs.Turn++
	gs.TurnCtx.AbilityUsed = false
	gs.Phase = PhaseTurnStart

	m.log(log.NewTurnBeginEvent(gs.Turn, tp, m.name(tp)))
	m.announceState()

	out, err := m.abilityPhase()
	if err != nil || out == OutcomeMatchOver {
		return err
	}

	if out := m.drawPhase(); out == OutcomeMatchOver {
		return nil
	}

	out, err = m.actionLoop()
	if err != nil || out == OutcomeMatchOver {
		return err
	}

	if m.turnEnd() == OutcomeMatchOver {
		return nil
	}

	gs.TurnPlayer = gs.Opponent(tp)
	return nil
}

// announceState logs a summary line for both players, turn player first.
func (m *Match) announceState() {
	gs := m.State
	for _, p := range []int{gs.TurnPlayer, gs.Opponent(gs.TurnPlayer)} {
		pl := gs.Players[p]
		m.log(log.NewStateSummaryEvent(gs.Turn, p, pl.Name(), pl.Fortitude, pl.HandCount(), pl.ArsenalCount()))
	}
}

// abilityPhase runs start-of-turn superstar abilities.
func (m *Match) abilityPhase() (Outcome, error) {
	gs := m.State
	gs.Phase = PhaseAbility
	ab := m.abilities[gs.TurnPlayer]
	if ab == nil || ab.OnTurnStart == nil {
		return OutcomeContinue, nil
	}
	return ab.OnTurnStart(m, gs.TurnPlayer)
}

// drawPhase draws one card, two for a superstar with an extra draw.
func (m *Match) drawPhase() Outcome {
	gs := m.State
	gs.Phase = PhaseDraw
	tp := gs.TurnPlayer
	m.log(log.NewPhaseChangeEvent(gs.Turn, tp, gs.Phase.String()))

	if out := m.drawCards(tp, 1); out == OutcomeMatchOver {
		return out
	}
	if ab := m.abilities[tp]; ab != nil && ab.ExtraDraw && gs.Players[tp].ArsenalCount() > 0 {
		m.drawCards(tp, 1)
	}
	return OutcomeContinue
}

// actionLoop offers actions until the turn ends or the match is over.
func (m *Match) actionLoop() (Outcome, error) {
	gs := m.State
	gs.Phase = PhaseAction
	tp := gs.TurnPlayer
	m.log(log.NewPhaseChangeEvent(gs.Turn, tp, gs.Phase.String()))

	for !gs.Over {
		actions := m.availableActions(tp)
		chosen, err := m.Controllers[tp].ChooseAction(m.ctx, gs, actions)
		if err != nil {
			return OutcomeContinue, fmt.Errorf("choose action: %w", err)
		}
		if !offered(actions, chosen.Type) {
			m.Diag.Debug("ignoring action that was not offered", zap.Stringer("action", chosen.Type))
			continue
		}

		out := OutcomeContinue
		switch chosen.Type {
		case ActionUseAbility:
			out, err = m.useAbility(tp)
		case ActionShowCards:
			err = m.showCards(tp)
		case ActionPlayCard:
			out, err = m.playCard(tp)
		case ActionEndTurn:
			return OutcomeEndTurn, nil
		case ActionGiveUp:
			m.log(log.NewGiveUpEvent(gs.Turn, tp, m.name(tp)))
			return m.declareWinner(gs.Opponent(tp), m.name(tp)+" gave up"), nil
		}
		if err != nil {
			return out, err
		}
		if out != OutcomeContinue {
			return out, nil
		}
	}
	return OutcomeMatchOver, nil
}

// availableActions computes the action loop menu for player.
func (m *Match) availableActions(player int) []Action {
	var actions []Action
	if m.canUseAbility(player) {
		actions = append(actions, Action{
			Type:   ActionUseAbility,
			Player: player,
			Desc:   "Use ability: " + m.abilities[player].Name,
		})
	}
	actions = append(actions, Action{Type: ActionShowCards, Player: player, Desc: "Show cards"})
	if len(m.offeredPlays(player)) > 0 {
		actions = append(actions, Action{Type: ActionPlayCard, Player: player, Desc: "Play a card"})
	}
	actions = append(actions,
		Action{Type: ActionEndTurn, Player: player, Desc: "End turn"},
		Action{Type: ActionGiveUp, Player: player, Desc: "Give up"},
	)
	return actions
}

func offered(actions []Action, t ActionType) bool {
	for _, a := range actions {
		if a.Type == t {
			return true
		}
	}
	return false
}

// showCards lets player inspect one of the visible zones. Only the asking
// player is notified.
func (m *Match) showCards(player int) error {
	gs := m.State
	opp := gs.Opponent(player)
	zones := []ZoneRef{
		{Player: player, Zone: ZoneHand, Desc: "My hand"},
		{Player: player, Zone: ZoneRingArea, Desc: "My ring area"},
		{Player: player, Zone: ZoneRingside, Desc: "My ringside pile"},
		{Player: opp, Zone: ZoneRingArea, Desc: "Opponent's ring area"},
		{Player: opp, Zone: ZoneRingside, Desc: "Opponent's ringside pile"},
	}
	idx, err := m.Controllers[player].ChooseZone(m.ctx, gs, zones)
	if err != nil {
		return fmt.Errorf("choose zone: %w", err)
	}
	if idx < 0 || idx >= len(zones) {
		return nil
	}
	z := zones[idx]
	var titles []string
	for _, c := range gs.Players[z.Player].Zone(z.Zone) {
		titles = append(titles, c.DisplayString())
	}
	event := log.NewShowCardsEvent(gs.Turn, player, m.name(player), z.Desc, titles)
	m.Logger.Log(event)
	_ = m.Controllers[player].Notify(m.ctx, event)
	return nil
}

// turnEnd clears the turn player's modifier and checks both arsenals.
func (m *Match) turnEnd() Outcome {
	gs := m.State
	gs.Phase = PhaseTurnEnd
	tp := gs.TurnPlayer
	opp := gs.Opponent(tp)

	if mod := gs.TurnCtx.Jockeying; mod != nil && mod.Owner == tp {
		gs.TurnCtx.Jockeying = nil
	}
	gs.TurnCtx.AbilityUsed = false

	if gs.Players[tp].ArsenalCount() == 0 {
		return m.declareWinner(opp, m.name(tp)+"'s arsenal is empty")
	}
	if gs.Players[opp].ArsenalCount() == 0 {
		return m.declareWinner(tp, m.name(opp)+"'s arsenal is empty")
	}
	return OutcomeContinue
}

// drawCards draws n cards for player. Drawing from an empty arsenal loses the match.
func (m *Match) drawCards(player, n int) Outcome {
	gs := m.State
	p := gs.Players[player]
	drawn := 0
	for i := 0; i < n; i++ {
		if p.Draw() == nil {
			if drawn > 0 {
				m.log(log.NewDrawEvent(gs.Turn, gs.Phase.String(), player, m.name(player), drawn))
			}
			return m.declareWinner(gs.Opponent(player), m.name(player)+" has to draw from an empty arsenal")
		}
		drawn++
	}
	if drawn > 0 {
		m.log(log.NewDrawEvent(gs.Turn, gs.Phase.String(), player, m.name(player), drawn))
	}
	return OutcomeContinue
}

// declareWinner ends the match immediately.
func (m *Match) declareWinner(winner int, reason string) Outcome {
	gs := m.State
	if gs.Over {
		return OutcomeMatchOver
	}
	gs.Over = true
	gs.Winner = winner
	gs.Result = fmt.Sprintf("%s wins: %s", m.name(winner), reason)
	m.log(log.NewWinEvent(gs.Turn, winner, m.name(winner)))
	return OutcomeMatchOver
}

func (m *Match) name(player int) string {
	return m.State.Players[player].Name()
}

// log emits a match event through the logger and notifies both players.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = m.Controllers[i].Notify(m.ctx, event)
	}
}

package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
	"github.com/peterkuimelis/rawdeal/internal/view"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *MatchSession
	responseCh chan any
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *MatchSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// ask publishes a decision and waits for the tool call that answers it.
func (c *MCPController) ask(ctx context.Context, d *PendingDecision) (any, error) {
	d.Player = c.player
	select {
	case c.session.pendingCh <- d:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *MCPController) askIndex(ctx context.Context, d *PendingDecision) (int, error) {
	resp, err := c.ask(ctx, d)
	if err != nil {
		return -1, err
	}
	ir, ok := resp.(IndexResponse)
	if !ok {
		return -1, fmt.Errorf("unexpected response %T for %s", resp, d.Type)
	}
	return ir.Index, nil
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	idx, err := c.askIndex(ctx, &PendingDecision{
		Type:    DecisionChooseAction,
		State:   view.BuildStateView(state, c.player),
		Options: view.ActionViews(actions),
	})
	if err != nil {
		return game.Action{}, err
	}
	if idx < 0 || idx >= len(actions) {
		// Not an offered action: the action loop asks again.
		return game.Action{Type: -1}, nil
	}
	return actions[idx], nil
}

// ChooseZone implements game.PlayerController.
func (c *MCPController) ChooseZone(ctx context.Context, state *game.GameState, zones []game.ZoneRef) (int, error) {
	return c.askIndex(ctx, &PendingDecision{
		Type:    DecisionChooseZone,
		State:   view.BuildStateView(state, c.player),
		Prompt:  "Which cards do you want to see?",
		Options: view.ZoneViews(zones),
	})
}

// ChoosePlay implements game.PlayerController.
func (c *MCPController) ChoosePlay(ctx context.Context, state *game.GameState, plays []game.Play) (int, error) {
	return c.askIndex(ctx, &PendingDecision{
		Type:     DecisionChoosePlay,
		State:    view.BuildStateView(state, c.player),
		Prompt:   "Choose a card to play, or -1 to go back",
		Options:  view.PlayViews(plays),
		Optional: true,
	})
}

// ChooseReversal implements game.PlayerController.
func (c *MCPController) ChooseReversal(ctx context.Context, state *game.GameState, attack game.Play, candidates []*game.CardInstance) (int, error) {
	return c.askIndex(ctx, &PendingDecision{
		Type:     DecisionChooseReversal,
		State:    view.BuildStateView(state, c.player),
		Prompt:   "Your opponent plays " + view.FormatPlay(attack) + ". Reverse it, or -1 to decline",
		Options:  view.ReversalViews(candidates),
		Optional: true,
	})
}

// ChooseAmount implements game.PlayerController.
func (c *MCPController) ChooseAmount(ctx context.Context, state *game.GameState, prompt string, max int) (int, error) {
	return c.askIndex(ctx, &PendingDecision{
		Type:   DecisionChooseAmount,
		State:  view.BuildStateView(state, c.player),
		Prompt: prompt,
		Max:    max,
	})
}

// ChooseCards implements game.PlayerController.
func (c *MCPController) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:       DecisionChooseCards,
		State:      view.BuildStateView(state, c.player),
		Prompt:     prompt,
		Candidates: view.CardViews(candidates),
		Min:        min,
		Max:        max,
	})
	if err != nil {
		return nil, err
	}
	cr, ok := resp.(CardsResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T for %s", resp, DecisionChooseCards)
	}

	var result []*game.CardInstance
	for _, idx := range cr.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseJockeying implements game.PlayerController.
func (c *MCPController) ChooseJockeying(ctx context.Context, state *game.GameState) (game.JockeyingEffect, error) {
	idx, err := c.askIndex(ctx, &PendingDecision{
		Type:    DecisionChooseJockeying,
		State:   view.BuildStateView(state, c.player),
		Prompt:  "Choose a Jockeying for Position effect",
		Options: view.JockeyingViews(),
	})
	if err != nil {
		return game.JockeyingNone, err
	}
	if idx < 0 || idx >= len(view.JockeyingOptions) {
		return game.JockeyingNone, nil
	}
	return view.JockeyingOptions[idx], nil
}

// ChooseYesNo implements game.PlayerController.
func (c *MCPController) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:   DecisionChooseYesNo,
		State:  view.BuildStateView(state, c.player),
		Prompt: prompt,
	})
	if err != nil {
		return false, err
	}
	yr, ok := resp.(YesNoResponse)
	if !ok {
		return false, fmt.Errorf("unexpected response %T for %s", resp, DecisionChooseYesNo)
	}
	return yr.Answer, nil
}

// Notify implements game.PlayerController.
// Public events reach both seats, so only seat one records them. Show cards
// events reach only the asking seat.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == 0 || event.Type == log.EventShowCards {
		c.session.appendEvent(view.NewEventView(event))
	}
	return nil
}

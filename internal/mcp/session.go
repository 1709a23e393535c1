package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
	"github.com/peterkuimelis/rawdeal/internal/view"
)

// DecisionType identifies what kind of decision the match engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction    DecisionType = "choose_action"
	DecisionChooseZone      DecisionType = "choose_zone"
	DecisionChoosePlay      DecisionType = "choose_play"
	DecisionChooseReversal  DecisionType = "choose_reversal"
	DecisionChooseAmount    DecisionType = "choose_amount"
	DecisionChooseCards     DecisionType = "choose_cards"
	DecisionChooseJockeying DecisionType = "choose_jockeying"
	DecisionChooseYesNo     DecisionType = "choose_yes_no"
	DecisionMatchOver       DecisionType = "match_over"
)

// optionDecision reports whether d is answered with choose_option.
func optionDecision(d DecisionType) bool {
	switch d {
	case DecisionChooseZone, DecisionChoosePlay, DecisionChooseReversal, DecisionChooseAmount, DecisionChooseJockeying:
		return true
	}
	return false
}

// PendingDecision represents a decision the match engine is waiting for.
type PendingDecision struct {
	Type       DecisionType      `json:"type"`
	Player     int               `json:"player"`
	State      *view.StateView   `json:"state"`
	Options    []view.OptionView `json:"options,omitempty"`
	Optional   bool              `json:"optional,omitempty"` // -1 declines
	Prompt     string            `json:"prompt,omitempty"`
	Candidates []view.CardView   `json:"candidates,omitempty"`
	Min        int               `json:"min,omitempty"`
	Max        int               `json:"max,omitempty"`
}

// Response types sent back from MCP tools to controllers.

type IndexResponse struct {
	Index int
}

type CardsResponse struct {
	Indices []int
}

type YesNoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID string           `json:"match_id,omitempty"`
	Events  []view.EventView `json:"events"`
	State   *view.StateView  `json:"state,omitempty"`
	Pending *PendingView     `json:"pending,omitempty"`
	Over    bool             `json:"match_over"`
	Winner  int              `json:"winner"`
	Result  string           `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType      `json:"type"`
	ForPlayer  string            `json:"for_player"`
	Tool       string            `json:"tool"`
	Options    []view.OptionView `json:"options,omitempty"`
	Optional   bool              `json:"optional,omitempty"`
	Prompt     string            `json:"prompt,omitempty"`
	Candidates []view.CardView   `json:"candidates,omitempty"`
	Min        int               `json:"min,omitempty"`
	Max        int               `json:"max,omitempty"`
}

// MatchSession holds the state of a single MCP match. Both seats are driven
// through tool calls.
type MatchSession struct {
	match  *game.Match
	ctrls  [2]*MCPController
	cancel context.CancelFunc
	diag   *zap.Logger

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	done           chan struct{}

	mu     sync.Mutex
	events []view.EventView
	over   bool
	winner int
	result string
}

// NewMatchSession creates the match and runs it in its own goroutine until
// it ends or Close is called.
func NewMatchSession(cfg game.MatchConfig) *MatchSession {
	diag := cfg.Diag
	if diag == nil {
		diag = zap.NewNop()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}

	sess := &MatchSession{
		pendingCh: make(chan *PendingDecision, 1),
		done:      make(chan struct{}),
		winner:    -1,
	}
	sess.ctrls[0] = NewMCPController(0, sess)
	sess.ctrls[1] = NewMCPController(1, sess)
	sess.match = game.NewMatch(cfg, sess.ctrls[0], sess.ctrls[1])
	sess.diag = diag.With(zap.String("match_id", sess.match.State.MatchID))

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	go func() {
		defer close(sess.done)
		winner, err := sess.match.Run(ctx)

		result := sess.match.State.Result
		if err != nil {
			sess.diag.Warn("match stopped", zap.Error(err))
			result = fmt.Sprintf("error: %v", err)
			winner = -1
		}
		if result == "" {
			result = fmt.Sprintf("Match over. Winner: player %d", winner+1)
		}

		sess.mu.Lock()
		sess.over = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		final := &PendingDecision{
			Type:   DecisionMatchOver,
			Player: winner,
			State:  view.BuildStateView(sess.match.State, 0),
		}
		select {
		case sess.pendingCh <- final:
		case <-ctx.Done():
		}
	}()

	return sess
}

// MatchID returns the id of the running match.
func (s *MatchSession) MatchID() string {
	return s.match.State.MatchID
}

// Close stops the match goroutine and waits for it to exit.
func (s *MatchSession) Close() {
	s.cancel()
	<-s.done
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *MatchSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *MatchSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// respond hands an answer to the seat that owns the current decision.
func (s *MatchSession) respond(resp any) {
	s.ctrls[s.currentPending.Player].responseCh <- resp
}

// waitForPending blocks until the next decision arrives from the match engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *MatchSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.snapshot(), nil
}

// adoptQueued picks up a decision that arrived after an abandoned wait.
func (s *MatchSession) adoptQueued() {
	if s.currentPending != nil {
		return
	}
	select {
	case s.currentPending = <-s.pendingCh:
	default:
	}
}

// snapshot describes the session as of the current pending decision.
func (s *MatchSession) snapshot() *ToolResponse {
	resp := &ToolResponse{
		MatchID: s.MatchID(),
		Events:  s.drainEvents(),
		Winner:  -1,
	}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionMatchOver {
		s.mu.Lock()
		resp.Over = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}

	resp.Pending = &PendingView{
		Type:       pending.Type,
		ForPlayer:  playerLabel(pending.Player),
		Tool:       toolFor(pending.Type),
		Options:    pending.Options,
		Optional:   pending.Optional,
		Prompt:     pending.Prompt,
		Candidates: pending.Candidates,
		Min:        pending.Min,
		Max:        pending.Max,
	}
	return resp
}

// playerLabel names a seat the way the state view does.
func playerLabel(player int) string {
	return fmt.Sprintf("P%d", player+1)
}

// toolFor names the tool that answers a decision.
func toolFor(d DecisionType) string {
	switch {
	case d == DecisionChooseAction:
		return "take_action"
	case optionDecision(d):
		return "choose_option"
	case d == DecisionChooseCards:
		return "select_cards"
	case d == DecisionChooseYesNo:
		return "answer_yes_no"
	}
	return ""
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

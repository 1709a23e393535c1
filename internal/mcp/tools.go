package mcp

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/deck"
	"github.com/peterkuimelis/rawdeal/internal/game"
)

var (
	// toolMu serializes tool calls; each call owns the session until it returns.
	toolMu sync.Mutex

	// activeSession is the singleton match session (one per stdio process).
	activeSession *MatchSession

	cardCatalog *catalog.Catalog
	effects     *game.EffectTable
	diag        = zap.NewNop()
)

// SetCatalog sets the card catalog decks are resolved against.
func SetCatalog(c *catalog.Catalog) {
	cardCatalog = c
}

// SetEffects sets the effect table. Nil selects the built-in table.
func SetEffects(t *game.EffectTable) {
	effects = t
}

// SetLogger sets the diagnostics logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	diag = l
}

// RegisterTools adds all match tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), handleStartMatch)
	s.AddTool(takeActionTool(), handleTakeAction)
	s.AddTool(chooseOptionTool(), handleChooseOption)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(answerYesNoTool(), handleAnswerYesNo)
	s.AddTool(getMatchStateTool(), handleGetMatchState)
	s.AddTool(endMatchTool(), handleEndMatch)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new Raw Deal match between two decks. Both seats (P1 and P2) are played through these tools. "+
			"Returns the initial state and the first pending decision."),
		mcp.WithString("deck1", mcp.Required(), mcp.Description("Path to P1's deck file (.txt or .yaml)")),
		mcp.WithString("deck2", mcp.Required(), mcp.Description("Path to P2's deck file (.txt or .yaml)")),
		mcp.WithNumber("deck1_index", mcp.Description("1-based deck number inside a YAML file for P1 (default 1)")),
		mcp.WithNumber("deck2_index", mcp.Description("1-based deck number inside a YAML file for P2 (default 1)")),
		mcp.WithBoolean("shuffle", mcp.Description("Shuffle both arsenals before drawing starting hands")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed (0 = random)")),
		mcp.WithNumber("max_turns", mcp.Description("End the match without a winner after this many turns (0 = no limit)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending options. Use this when the pending decision type is 'choose_action'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the options list")),
	)
}

func chooseOptionTool() mcp.Tool {
	return mcp.NewTool("choose_option",
		mcp.WithDescription("Answer a choose_zone, choose_play, choose_reversal, choose_jockeying or choose_amount decision. "+
			"For choose_amount the index is the amount itself (min..max). For optional decisions -1 declines."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based option index, the amount, or -1 to decline")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select cards from the pending candidates list. Use this when the pending decision type is 'choose_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices of cards to select (e.g. '0 2 3'), or empty string for no selection")),
	)
}

func answerYesNoTool() mcp.Tool {
	return mcp.NewTool("answer_yes_no",
		mcp.WithDescription("Answer a yes/no question. Use this when the pending decision type is 'choose_yes_no'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func endMatchTool() mcp.Tool {
	return mcp.NewTool("end_match",
		mcp.WithDescription("Abandon the running match without a winner so a new one can be started."),
	)
}

// --- Tool handlers ---

func handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A match is already running. Only one match at a time is supported."), nil
	}
	if cardCatalog == nil {
		return mcp.NewToolResultError("No card catalog loaded."), nil
	}

	var seats [2]struct {
		cards []*catalog.Card
		star  *catalog.Superstar
	}
	for i, key := range []string{"deck1", "deck2"} {
		path := request.GetString(key, "")
		if path == "" {
			return mcp.NewToolResultErrorf("%s is required", key), nil
		}
		list, err := deck.LoadOne(path, request.GetInt(key+"_index", 1))
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load %s: %v", key, err), nil
		}
		cards, star, err := list.Resolve(cardCatalog)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid %s: %v", key, err), nil
		}
		seats[i].cards, seats[i].star = cards, star
	}

	sess := NewMatchSession(game.MatchConfig{
		Deck0:      seats[0].cards,
		Deck1:      seats[1].cards,
		Superstar0: seats[0].star,
		Superstar1: seats[1].star,
		Diag:       diag,
		Effects:    effects,
		Shuffle:    request.GetBool("shuffle", false),
		Seed:       int64(request.GetInt("seed", 0)),
		MaxTurns:   request.GetInt("max_turns", 0),
	})
	activeSession = sess
	diag.Info("match started",
		zap.String("match_id", sess.MatchID()),
		zap.String("p1", seats[0].star.Name),
		zap.String("p2", seats[1].star.Name))

	return waitAndRespond(ctx, sess)
}

// currentDecision checks that a match is running and waiting for want.
func currentDecision(want func(DecisionType) bool, name string) (*MatchSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No match is running. Use start_match first.")
	}
	sess := activeSession
	sess.adoptQueued()
	pending := sess.currentPending
	if pending == nil || pending.Type == DecisionMatchOver {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if !want(pending.Type) {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', use %s instead of %s.", pending.Type, toolFor(pending.Type), name)
	}
	return sess, pending, nil
}

// waitAndRespond waits for the next decision and clears the session once the match is over.
func waitAndRespond(ctx context.Context, sess *MatchSession) (*mcp.CallToolResult, error) {
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		// The answered decision is stale; the next one is adopted when it arrives.
		sess.currentPending = nil
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.Over {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	sess, pending, errResult := currentDecision(func(d DecisionType) bool { return d == DecisionChooseAction }, "take_action")
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Options) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Options)-1), nil
	}

	sess.respond(IndexResponse{Index: index})
	return waitAndRespond(ctx, sess)
}

func handleChooseOption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	sess, pending, errResult := currentDecision(optionDecision, "choose_option")
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -2)
	switch {
	case pending.Type == DecisionChooseAmount:
		if index < pending.Min || index > pending.Max {
			return mcp.NewToolResultErrorf("Invalid amount %d. Must be %d-%d.", index, pending.Min, pending.Max), nil
		}
	case index == -1 && pending.Optional:
	case index < 0 || index >= len(pending.Options):
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Options)-1), nil
	}

	sess.respond(IndexResponse{Index: index})
	return waitAndRespond(ctx, sess)
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	sess, pending, errResult := currentDecision(func(d DecisionType) bool { return d == DecisionChooseCards }, "select_cards")
	if errResult != nil {
		return errResult, nil
	}

	indicesStr := request.GetString("indices", "")
	var indices []int
	seen := make(map[int]bool)
	for _, p := range strings.Fields(indicesStr) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
		}
		if idx < 0 || idx >= len(pending.Candidates) {
			return mcp.NewToolResultErrorf("Index %d out of range. Must be 0-%d.", idx, len(pending.Candidates)-1), nil
		}
		if seen[idx] {
			return mcp.NewToolResultErrorf("Index %d selected twice.", idx), nil
		}
		seen[idx] = true
		indices = append(indices, idx)
	}

	if len(indices) < pending.Min {
		return mcp.NewToolResultErrorf("Must select at least %d card(s), got %d.", pending.Min, len(indices)), nil
	}
	if len(indices) > pending.Max {
		return mcp.NewToolResultErrorf("Must select at most %d card(s), got %d.", pending.Max, len(indices)), nil
	}

	sess.respond(CardsResponse{Indices: indices})
	return waitAndRespond(ctx, sess)
}

func handleAnswerYesNo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	sess, _, errResult := currentDecision(func(d DecisionType) bool { return d == DecisionChooseYesNo }, "answer_yes_no")
	if errResult != nil {
		return errResult, nil
	}

	sess.respond(YesNoResponse{Answer: request.GetBool("answer", false)})
	return waitAndRespond(ctx, sess)
}

func handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	activeSession.adoptQueued()
	return mcp.NewToolResultText(respondJSON(activeSession.snapshot())), nil
}

func handleEndMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolMu.Lock()
	defer toolMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No match is running."), nil
	}
	sess := activeSession
	activeSession = nil
	sess.Close()
	diag.Info("match abandoned", zap.String("match_id", sess.MatchID()))
	return mcp.NewToolResultText(respondJSON(&ToolResponse{
		MatchID: sess.MatchID(),
		Events:  sess.drainEvents(),
		Winner:  -1,
		Over:    true,
		Result:  "Match abandoned",
	})), nil
}

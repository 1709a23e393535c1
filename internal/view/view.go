// Package view turns engine state into display structures shared by the
// console and MCP front ends.
package view

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

// EventView is a simplified match event.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// OptionView is a numbered choice (action, play, zone, reversal).
type OptionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// CardView describes a card for selection or display.
type CardView struct {
	Index     int      `json:"index"`
	Title     string   `json:"title"`
	Types     []string `json:"types"`
	Subtypes  []string `json:"subtypes,omitempty"`
	Fortitude int      `json:"fortitude"`
	Damage    string   `json:"damage"`
	StunValue int      `json:"stun_value"`
	Text      string   `json:"text,omitempty"`
}

// StateView is the match state from one player's perspective.
type StateView struct {
	MatchID    string     `json:"match_id"`
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
	Jockeying  string     `json:"jockeying,omitempty"`
	Over       bool       `json:"over,omitempty"`
	Result     string     `json:"result,omitempty"`
}

// PlayerView shows one side of the match.
type PlayerView struct {
	Superstar    string     `json:"superstar"`
	Fortitude    int        `json:"fortitude"`
	HandCount    int        `json:"hand_count"`
	Hand         []CardView `json:"hand,omitempty"` // only for "you"
	ArsenalCount int        `json:"arsenal_count"`
	RingArea     []string   `json:"ring_area,omitempty"`
	Ringside     []string   `json:"ringside,omitempty"`
}

// BuildStateView creates a StateView from the perspective of the given player.
// The opponent's hand stays hidden.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	sv := &StateView{
		MatchID:    state.MatchID,
		Turn:       state.Turn,
		Phase:      state.Phase.String(),
		IsYourTurn: state.TurnPlayer == me,
		Over:       state.Over,
		Result:     state.Result,
	}
	if mod := state.TurnCtx.Jockeying; mod != nil {
		sv.Jockeying = fmt.Sprintf("P%d: %s", mod.Owner+1, mod.Effect)
	}

	sv.You = playerView(state.Players[me])
	sv.You.Hand = CardViews(state.Players[me].Hand)
	sv.Opponent = playerView(state.Players[opp])
	return sv
}

func playerView(p *game.Player) PlayerView {
	return PlayerView{
		Superstar:    p.Name(),
		Fortitude:    p.Fortitude,
		HandCount:    p.HandCount(),
		ArsenalCount: p.ArsenalCount(),
		RingArea:     titles(p.RingArea),
		Ringside:     titles(p.Ringside),
	}
}

func titles(cards []*game.CardInstance) []string {
	var out []string
	for _, c := range cards {
		out = append(out, c.Card.Title)
	}
	return out
}

// NewCardView describes a card instance at position index.
func NewCardView(index int, ci *game.CardInstance) CardView {
	c := ci.Card
	cv := CardView{
		Index:     index,
		Title:     c.Title,
		Subtypes:  c.Subtypes,
		Fortitude: c.Fortitude,
		Damage:    c.Damage.String(),
		StunValue: c.StunValue,
		Text:      c.Text,
	}
	for _, t := range c.Types {
		cv.Types = append(cv.Types, t.String())
	}
	return cv
}

// CardViews describes a list of card instances, indexed by position.
func CardViews(cards []*game.CardInstance) []CardView {
	var out []CardView
	for i, c := range cards {
		out = append(out, NewCardView(i, c))
	}
	return out
}

// ActionViews numbers the action loop menu.
func ActionViews(actions []game.Action) []OptionView {
	var out []OptionView
	for i, a := range actions {
		out = append(out, OptionView{Index: i, Desc: a.String()})
	}
	return out
}

// PlayViews numbers the offered plays.
func PlayViews(plays []game.Play) []OptionView {
	var out []OptionView
	for i, p := range plays {
		out = append(out, OptionView{Index: i, Desc: FormatPlay(p)})
	}
	return out
}

// ZoneViews numbers the inspectable zones.
func ZoneViews(zones []game.ZoneRef) []OptionView {
	var out []OptionView
	for i, z := range zones {
		out = append(out, OptionView{Index: i, Desc: z.String()})
	}
	return out
}

// ReversalViews numbers reversal candidates.
func ReversalViews(candidates []*game.CardInstance) []OptionView {
	var out []OptionView
	for i, c := range candidates {
		out = append(out, OptionView{Index: i, Desc: FormatCard(c)})
	}
	return out
}

// JockeyingOptions are the two Jockeying for Position effects in menu order.
var JockeyingOptions = []game.JockeyingEffect{game.JockeyingGrappleBonus, game.JockeyingFortitudePenalty}

// JockeyingViews numbers the Jockeying effects.
func JockeyingViews() []OptionView {
	var out []OptionView
	for i, e := range JockeyingOptions {
		out = append(out, OptionView{Index: i, Desc: e.String()})
	}
	return out
}

// NewEventView converts a match event.
func NewEventView(event log.GameEvent) EventView {
	return EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}

// FormatCard renders a card on one line: title, types, stats and subtypes.
func FormatCard(ci *game.CardInstance) string {
	if ci == nil {
		return "(empty)"
	}
	c := ci.Card
	types := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		types = append(types, t.String())
	}
	s := fmt.Sprintf("%s (%s) F:%d D:%s SV:%d", c.Title, strings.Join(types, "/"), c.Fortitude, c.Damage, c.StunValue)
	if len(c.Subtypes) > 0 {
		s += " [" + strings.Join(c.Subtypes, ", ") + "]"
	}
	return s
}

// FormatPlay renders an offered play.
func FormatPlay(p game.Play) string {
	if p.Card == nil {
		return "(none)"
	}
	return FormatCard(p.Card) + " as " + p.As.String()
}

// FormatCardText renders a card with its printed text, for detailed display.
func FormatCardText(c *catalog.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	types := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		types = append(types, t.String())
	}
	fmt.Fprintf(&b, "Types: %s\n", strings.Join(types, ", "))
	if len(c.Subtypes) > 0 {
		fmt.Fprintf(&b, "Subtypes: %s\n", strings.Join(c.Subtypes, ", "))
	}
	fmt.Fprintf(&b, "Fortitude: %d  Damage: %s  Stun Value: %d\n", c.Fortitude, c.Damage, c.StunValue)
	if c.Text != "" {
		fmt.Fprintf(&b, "Effect: %s\n", c.Text)
	}
	return b.String()
}

package game

import (
	"math/rand"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
)

// Player represents one player's entire state.
type Player struct {
	Superstar *catalog.Superstar
	Fortitude int             // cumulative for the whole match
	Arsenal   []*CardInstance // top of arsenal is last element (pop from end)
	Hand      []*CardInstance
	RingArea  []*CardInstance
	Ringside  []*CardInstance
}

// Name returns the superstar name.
func (p *Player) Name() string {
	if p.Superstar == nil {
		return "(nobody)"
	}
	return p.Superstar.Name
}

// ArsenalCount returns the number of cards remaining in the arsenal.
func (p *Player) ArsenalCount() int {
	return len(p.Arsenal)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// TotalCards counts the cards in all four zones.
func (p *Player) TotalCards() int {
	return len(p.Arsenal) + len(p.Hand) + len(p.RingArea) + len(p.Ringside)
}

// Draw removes the top card from the arsenal and adds it to the hand.
// Returns the drawn card, or nil if the arsenal is empty.
func (p *Player) Draw() *CardInstance {
	card := p.popArsenal()
	if card == nil {
		return nil
	}
	card.Zone = ZoneHand
	p.Hand = append(p.Hand, card)
	return card
}

// Overturn moves the top arsenal card to the ringside pile.
// Returns the overturned card, or nil if the arsenal is empty.
func (p *Player) Overturn() *CardInstance {
	card := p.popArsenal()
	if card == nil {
		return nil
	}
	p.PutRingside(card)
	return card
}

func (p *Player) popArsenal() *CardInstance {
	if len(p.Arsenal) == 0 {
		return nil
	}
	card := p.Arsenal[len(p.Arsenal)-1]
	p.Arsenal = p.Arsenal[:len(p.Arsenal)-1]
	return card
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) bool {
	return removeCard(&p.Hand, card)
}

// RemoveFromRingside removes a card from the ringside pile by instance ID.
func (p *Player) RemoveFromRingside(card *CardInstance) bool {
	return removeCard(&p.Ringside, card)
}

// Discard moves a hand card to the ringside pile.
func (p *Player) Discard(card *CardInstance) bool {
	if !p.RemoveFromHand(card) {
		return false
	}
	p.PutRingside(card)
	return true
}

// PutRingArea places a card in the ring area.
func (p *Player) PutRingArea(card *CardInstance) {
	card.Zone = ZoneRingArea
	p.RingArea = append(p.RingArea, card)
}

// PutRingside places a card on the ringside pile.
func (p *Player) PutRingside(card *CardInstance) {
	card.Zone = ZoneRingside
	p.Ringside = append(p.Ringside, card)
}

// RecoverToArsenal moves a ringside card to the bottom of the arsenal.
func (p *Player) RecoverToArsenal(card *CardInstance) bool {
	if !p.RemoveFromRingside(card) {
		return false
	}
	card.Zone = ZoneArsenal
	p.Arsenal = append([]*CardInstance{card}, p.Arsenal...)
	return true
}

// RecoverToHand moves a ringside card to the hand.
func (p *Player) RecoverToHand(card *CardInstance) bool {
	if !p.RemoveFromRingside(card) {
		return false
	}
	card.Zone = ZoneHand
	p.Hand = append(p.Hand, card)
	return true
}

// ReturnToArsenal moves a hand card to the top of the arsenal.
func (p *Player) ReturnToArsenal(card *CardInstance) bool {
	if !p.RemoveFromHand(card) {
		return false
	}
	card.Zone = ZoneArsenal
	p.Arsenal = append(p.Arsenal, card)
	return true
}

// Zone returns the cards of a zone. The arsenal is returned top first.
func (p *Player) Zone(z ZoneType) []*CardInstance {
	switch z {
	case ZoneArsenal:
		out := make([]*CardInstance, 0, len(p.Arsenal))
		for i := len(p.Arsenal) - 1; i >= 0; i-- {
			out = append(out, p.Arsenal[i])
		}
		return out
	case ZoneHand:
		return p.Hand
	case ZoneRingArea:
		return p.RingArea
	case ZoneRingside:
		return p.Ringside
	}
	return nil
}

// ShuffleArsenal randomizes the arsenal order.
func (p *Player) ShuffleArsenal(rng *rand.Rand) {
	rng.Shuffle(len(p.Arsenal), func(i, j int) {
		p.Arsenal[i], p.Arsenal[j] = p.Arsenal[j], p.Arsenal[i]
	})
}

func removeCard(zone *[]*CardInstance, card *CardInstance) bool {
	for i, c := range *zone {
		if c.ID == card.ID {
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			return true
		}
	}
	return false
}

// --- GameState ---

// TurnContext is the transient state of the current turn.
type TurnContext struct {
	AbilityUsed bool
	Jockeying   *JockeyingModifier // at most one pending modifier
}

// GameState holds the complete state of a match.
type GameState struct {
	MatchID    string
	Players    [2]*Player
	Turn       int // 1-based turn counter
	TurnPlayer int // 0 or 1: whose turn it is
	Phase      Phase
	TurnCtx    TurnContext

	// ID counter for card instances
	nextID int

	// Match result
	Winner int // 0, 1, or -1 (no winner yet)
	Over   bool
	Result string
}

// NewGameState creates a fresh match state.
func NewGameState(s0, s1 *catalog.Superstar) *GameState {
	return &GameState{
		Players: [2]*Player{
			{Superstar: s0},
			{Superstar: s1},
		},
		Phase:  PhaseNone,
		Winner: -1,
	}
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the Player struct for the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnPlayer]
}

// OpponentPlayer returns the Player struct for the non-turn player.
func (gs *GameState) OpponentPlayer() *Player {
	return gs.Players[gs.Opponent(gs.TurnPlayer)]
}

// CreateCardInstance creates a CardInstance from a Card definition, assigned to a player.
func (gs *GameState) CreateCardInstance(card *catalog.Card, owner int) *CardInstance {
	return &CardInstance{
		Card:  card,
		ID:    gs.NextID(),
		Owner: owner,
		Zone:  ZoneArsenal,
	}
}

// effectiveFortitude is the fortitude player can spend on reversing the given
// play, after any Jockeying penalty. It may be negative.
func (gs *GameState) effectiveFortitude(player int, res *resolution) int {
	f := gs.Players[player].Fortitude
	if res != nil && res.penalized() {
		f -= FortitudePenalty
	}
	return f
}

package game

import (
	"fmt"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseTurnStart
	PhaseAbility
	PhaseDraw
	PhaseAction
	PhaseTurnEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "Turn Start"
	case PhaseAbility:
		return "Ability"
	case PhaseDraw:
		return "Draw"
	case PhaseAction:
		return "Action"
	case PhaseTurnEnd:
		return "Turn End"
	default:
		return "None"
	}
}

// Outcome tells the caller of a resolution step how the turn proceeds.
type Outcome int

const (
	OutcomeContinue  Outcome = iota // back to the action loop
	OutcomeEndTurn                  // the active player's turn is over
	OutcomeMatchOver                // a winner has been declared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "Continue"
	case OutcomeEndTurn:
		return "EndTurn"
	case OutcomeMatchOver:
		return "MatchOver"
	default:
		return "Unknown"
	}
}

// Rule constants.
const (
	GrappleBonus         = 4 // Jockeying bonus on the next Grapple maneuver
	FortitudePenalty     = 8 // Jockeying penalty on the opponent's reversal checks
	SpecialReversalLimit = 7 // highest damage a "Special" reversal can stop
)

// JockeyingEffect is the effect chosen when Jockeying for Position resolves.
type JockeyingEffect int

const (
	JockeyingNone JockeyingEffect = iota
	JockeyingGrappleBonus
	JockeyingFortitudePenalty
)

func (j JockeyingEffect) String() string {
	switch j {
	case JockeyingGrappleBonus:
		return fmt.Sprintf("next Grapple maneuver does +%dD", GrappleBonus)
	case JockeyingFortitudePenalty:
		return fmt.Sprintf("opponent needs %dF more to reverse the next play", FortitudePenalty)
	default:
		return "none"
	}
}

// JockeyingModifier is a pending Jockeying effect and the player it benefits.
type JockeyingModifier struct {
	Owner  int
	Effect JockeyingEffect
}

// --- CardInstance (runtime card in a zone) ---

type CardInstance struct {
	Card  *catalog.Card
	ID    int // unique instance ID within a match
	Owner int // player index (0 or 1)
	Zone  ZoneType
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Title
}

// DisplayString returns the title with printed stats.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	c := ci.Card
	return fmt.Sprintf("%s [F:%d D:%s SV:%d]", c.Title, c.Fortitude, c.Damage, c.StunValue)
}

// --- Zone types ---

type ZoneType int

const (
	ZoneArsenal ZoneType = iota
	ZoneHand
	ZoneRingArea
	ZoneRingside
)

func (z ZoneType) String() string {
	switch z {
	case ZoneArsenal:
		return "Arsenal"
	case ZoneHand:
		return "Hand"
	case ZoneRingArea:
		return "Ring Area"
	case ZoneRingside:
		return "Ringside"
	default:
		return "Unknown"
	}
}

// ZoneRef names a zone the active player may inspect.
type ZoneRef struct {
	Player int
	Zone   ZoneType
	Desc   string
}

func (z ZoneRef) String() string {
	if z.Desc != "" {
		return z.Desc
	}
	return fmt.Sprintf("P%d %s", z.Player+1, z.Zone)
}

// --- Action types ---

type ActionType int

const (
	ActionUseAbility ActionType = iota
	ActionShowCards
	ActionPlayCard
	ActionEndTurn
	ActionGiveUp
)

func (a ActionType) String() string {
	switch a {
	case ActionUseAbility:
		return "Use Ability"
	case ActionShowCards:
		return "Show Cards"
	case ActionPlayCard:
		return "Play Card"
	case ActionEndTurn:
		return "End Turn"
	case ActionGiveUp:
		return "Give Up"
	default:
		return "Unknown"
	}
}

// Action is one entry of the action loop menu.
type Action struct {
	Type   ActionType
	Player int
	Desc   string // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// Play is a hand card offered as one of its playable types.
type Play struct {
	Card      *CardInstance
	As        catalog.CardType
	HandIndex int
}

func (p Play) String() string {
	if p.Card == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s as %s", p.Card.DisplayString(), p.As)
}

// resolution carries everything known about the play being resolved. It is
// threaded through reversal checks, effect ops and damage.
type resolution struct {
	Attacker int
	Defender int
	Card     *CardInstance
	As       catalog.CardType
	Damage   int // effective damage, Jockeying bonus included
	Modifier JockeyingModifier
}

// penalized reports whether the defender's reversals cost more against this play.
func (r *resolution) penalized() bool {
	return r.Modifier.Effect == JockeyingFortitudePenalty && r.Modifier.Owner == r.Attacker
}

// play returns the public view of the attacking card.
func (r *resolution) play() Play {
	return Play{Card: r.Card, As: r.As, HandIndex: -1}
}

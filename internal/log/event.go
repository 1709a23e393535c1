package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventTurnBegin EventType = iota
	EventPhaseChange
	EventStateSummary
	EventDraw
	EventPlayAttempt
	EventPlaySuccess
	EventReversal
	EventReversalFromArsenal
	EventDamageIncoming
	EventOverturn
	EventDiscard
	EventRecover
	EventSelfDamage
	EventAbility
	EventJockeying
	EventStunDraw
	EventReturnToArsenal
	EventShowCards
	EventWin
	EventGiveUp
	EventTurnLimit
	EventNoEffect // effect id present but unknown to the effect table
)

func (e EventType) String() string {
	switch e {
	case EventTurnBegin:
		return "TurnBegin"
	case EventPhaseChange:
		return "PhaseChange"
	case EventStateSummary:
		return "StateSummary"
	case EventDraw:
		return "Draw"
	case EventPlayAttempt:
		return "PlayAttempt"
	case EventPlaySuccess:
		return "PlaySuccess"
	case EventReversal:
		return "Reversal"
	case EventReversalFromArsenal:
		return "ReversalFromArsenal"
	case EventDamageIncoming:
		return "DamageIncoming"
	case EventOverturn:
		return "Overturn"
	case EventDiscard:
		return "Discard"
	case EventRecover:
		return "Recover"
	case EventSelfDamage:
		return "SelfDamage"
	case EventAbility:
		return "Ability"
	case EventJockeying:
		return "Jockeying"
	case EventStunDraw:
		return "StunDraw"
	case EventReturnToArsenal:
		return "ReturnToArsenal"
	case EventShowCards:
		return "ShowCards"
	case EventWin:
		return "Win"
	case EventGiveUp:
		return "GiveUp"
	case EventTurnLimit:
		return "TurnLimit"
	case EventNoEffect:
		return "NoEffect"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Action")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card title (if applicable)
	Details string    // human-readable detail string
}

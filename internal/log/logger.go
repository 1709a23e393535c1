package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---
//
// name arguments are superstar names; the engine resolves them from the player
// index so announcements read the way the table talks.

func NewTurnBeginEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Turn Start",
		Player:  player,
		Type:    EventTurnBegin,
		Details: fmt.Sprintf("=== Turn %d: %s ===", turn, name),
	}
}

func NewPhaseChangeEvent(turn int, player int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewStateSummaryEvent(turn int, player int, name string, fortitude, hand, arsenal int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Turn Start",
		Player:  player,
		Type:    EventStateSummary,
		Details: fmt.Sprintf("%s: fortitude %d, %d cards in hand, %d cards in arsenal", name, fortitude, hand, arsenal),
	}
}

func NewDrawEvent(turn int, phase string, player int, name string, count int) GameEvent {
	noun := "cards"
	if count == 1 {
		noun = "card"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d %s", name, count, noun),
	}
}

func NewPlayAttemptEvent(turn int, player int, name, title, as string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventPlayAttempt,
		Card:    title,
		Details: fmt.Sprintf("%s is trying to play %s as %s", name, title, as),
	}
}

func NewPlaySuccessEvent(turn int, player int, name, title string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventPlaySuccess,
		Card:    title,
		Details: fmt.Sprintf("%s successfully plays %s", name, title),
	}
}

func NewReversalEvent(turn int, player int, name, reversal, reversed string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventReversal,
		Card:    reversal,
		Details: fmt.Sprintf("%s reverses %s with %s", name, reversed, reversal),
	}
}

func NewReversalFromArsenalEvent(turn int, player int, name, reversal, reversed string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventReversalFromArsenal,
		Card:    reversal,
		Details: fmt.Sprintf("%s overturns %s and reverses %s from the arsenal", name, reversal, reversed),
	}
}

func NewDamageIncomingEvent(turn int, phase string, player int, name string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDamageIncoming,
		Details: fmt.Sprintf("%s receives %d damage", name, amount),
	}
}

func NewOverturnEvent(turn int, phase string, player int, title string, i, n int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventOverturn,
		Card:    title,
		Details: fmt.Sprintf("%d/%d overturned: %s", i, n, title),
	}
}

func NewDiscardEvent(turn int, phase string, player int, name, title string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    title,
		Details: fmt.Sprintf("%s discards %s", name, title),
	}
}

func NewRecoverEvent(turn int, phase string, player int, name, title, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRecover,
		Card:    title,
		Details: fmt.Sprintf("%s recovers %s from ringside to %s", name, title, to),
	}
}

func NewSelfDamageEvent(turn int, phase string, player int, name string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSelfDamage,
		Details: fmt.Sprintf("%s takes %d self-inflicted damage", name, amount),
	}
}

func NewAbilityEvent(turn int, phase string, player int, name, text string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAbility,
		Details: fmt.Sprintf("%s uses the superstar ability: %s", name, text),
	}
}

func NewJockeyingEvent(turn int, player int, name, effect string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventJockeying,
		Card:    "Jockeying for Position",
		Details: fmt.Sprintf("%s chooses: %s", name, effect),
	}
}

func NewStunDrawEvent(turn int, player int, name string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventStunDraw,
		Details: fmt.Sprintf("%s draws %d card(s) due to stun value", name, count),
	}
}

func NewReturnToArsenalEvent(turn int, phase string, player int, name, title string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReturnToArsenal,
		Card:    title,
		Details: fmt.Sprintf("%s returns %s to the top of the arsenal", name, title),
	}
}

func NewShowCardsEvent(turn int, player int, name, zone string, titles []string) GameEvent {
	listing := "(empty)"
	if len(titles) > 0 {
		listing = strings.Join(titles, ", ")
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventShowCards,
		Details: fmt.Sprintf("%s looks at %s: %s", name, zone, listing),
	}
}

func NewWinEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins!", name),
	}
}

func NewGiveUpEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventGiveUp,
		Details: fmt.Sprintf("%s gives up", name),
	}
}

func NewTurnLimitEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTurnLimit,
		Details: fmt.Sprintf("Turn limit reached after %d turns, no winner", turn),
	}
}

func NewNoEffectEvent(turn int, player int, title string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventNoEffect,
		Card:    title,
		Details: fmt.Sprintf("%s has no resolvable effect", title),
	}
}

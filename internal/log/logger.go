package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging field events.
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

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "      "
	}
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
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

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewShuffleEvent(turn int, phase string, player int, pile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Zone:    pile,
		Details: fmt.Sprintf("%s shuffles their %s", playerName(player), pile),
	}
}

func NewPlaceEvent(turn int, phase string, player int, cardName, zone string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlace,
		Card:    cardName,
		Zone:    zone,
		Details: fmt.Sprintf("%s places %s in %s", playerName(player), cardName, zone),
	}
}

func NewNormalSummonEvent(turn int, phase string, player int, cardName, zone string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNormalSummon,
		Card:    cardName,
		Zone:    zone,
		Details: fmt.Sprintf("%s normal summons %s to %s", playerName(player), cardName, zone),
	}
}

func NewNormalSetEvent(turn int, phase string, player int, zone string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNormalSet,
		Zone:    zone,
		Details: fmt.Sprintf("%s sets a monster in %s", playerName(player), zone),
	}
}

func NewSpecialSummonEvent(turn int, phase string, player int, cardName, zone string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSpecialSummon,
		Card:    cardName,
		Zone:    zone,
		Details: fmt.Sprintf("%s special summons %s to %s", playerName(player), cardName, zone),
	}
}

func NewMoveEvent(turn int, phase string, player int, cardName, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventMove,
		Card:    cardName,
		Zone:    to,
		Details: fmt.Sprintf("%s moves %s: %s → %s", playerName(player), cardName, from, to),
	}
}

func NewAttachEvent(turn int, phase string, player int, material, host string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttach,
		Card:    material,
		Details: fmt.Sprintf("%s attaches %s to %s", playerName(player), material, host),
	}
}

func NewDetachEvent(turn int, phase string, player int, material, host string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDetach,
		Card:    material,
		Details: fmt.Sprintf("%s detaches %s from %s", playerName(player), material, host),
	}
}

func NewFlipEvent(turn int, phase string, player int, cardName string, faceDown bool) GameEvent {
	facing := "face-up"
	if faceDown {
		facing = "face-down"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFlip,
		Card:    cardName,
		Details: fmt.Sprintf("%s flips %s %s", playerName(player), cardName, facing),
	}
}

func NewChangePositionEvent(turn int, phase string, player int, cardName, newPos string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChangePosition,
		Card:    cardName,
		Details: fmt.Sprintf("%s changes %s to %s position", playerName(player), cardName, newPos),
	}
}

func NewTributeEvent(turn int, phase string, player int, tributes []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTribute,
		Details: fmt.Sprintf("%s tributes %s", playerName(player), strings.Join(tributes, ", ")),
	}
}

func NewReturnAllEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventReturnAll,
		Details: fmt.Sprintf("%s returns all cards to their decks", playerName(player)),
	}
}

func NewReturnToDeckEvent(turn int, phase string, player int, cardName, where string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReturnToDeck,
		Card:    cardName,
		Details: fmt.Sprintf("%s returns %s to the %s of the deck", playerName(player), cardName, where),
	}
}

func NewSideSwapEvent(turn int, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventSideSwap,
		Details: fmt.Sprintf("%s exchanges %d card(s) with the side deck", playerName(player), count),
	}
}

func NewChainLinkEvent(turn int, phase string, player int, cardName string, chainIndex int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainLink,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d: %s activates %s", chainIndex, playerName(player), cardName),
	}
}

func NewChainResolveEvent(turn int, phase string, player int, cardName string, chainIndex int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainResolve,
		Card:    cardName,
		Details: fmt.Sprintf("Chain Link %d resolves: %s", chainIndex, cardName),
	}
}

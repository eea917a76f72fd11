package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
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
		phase = "        "
	}
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

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
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

func NewDeckOutEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeckOut,
		Details: fmt.Sprintf("%s has no cards left to draw", playerName(player)),
	}
}

func NewEnergyGeneratedEvent(turn int, phase string, player int, energyType string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEnergyGenerated,
		Details: fmt.Sprintf("%s's energy zone generates %s energy", playerName(player), energyType),
	}
}

func NewEnergyAttachedEvent(turn int, phase string, player int, energyType string, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEnergyAttached,
		Card:    target,
		Details: fmt.Sprintf("%s attaches %s energy to %s", playerName(player), energyType, target),
	}
}

func NewPlayPokemonEvent(turn int, phase string, player int, cardName string, bench bool) GameEvent {
	where := "Active"
	if bench {
		where = "Bench"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayPokemon,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s to the %s spot", playerName(player), cardName, where),
	}
}

func NewEvolveEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEvolve,
		Card:    to,
		Details: fmt.Sprintf("%s evolves %s into %s", playerName(player), from, to),
	}
}

func NewRetreatEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetreat,
		Details: fmt.Sprintf("%s retreats %s, bringing in %s", playerName(player), from, to),
	}
}

func NewPromoteEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPromote,
		Card:    cardName,
		Details: fmt.Sprintf("%s promotes %s into the active spot", playerName(player), cardName),
	}
}

func NewPlayTrainerEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayTrainer,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s", playerName(player), cardName),
	}
}

func NewUnsupportedEffectEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventUnsupportedEffect,
		Card:    cardName,
		Details: fmt.Sprintf("%s has no registered effect implementation", cardName),
	}
}

func NewAttackDeclareEvent(turn int, player int, attacker string, attackName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s's %s uses %s", playerName(player), attacker, attackName),
	}
}

func NewDamageCalcEvent(turn int, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventDamageCalc,
		Details: details,
	}
}

func NewStatusAppliedEvent(turn int, phase string, player int, cardName string, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusApplied,
		Card:    cardName,
		Details: fmt.Sprintf("%s is now %s", cardName, status),
	}
}

func NewStatusTickEvent(turn int, phase string, player int, cardName string, status string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusTick,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes %d damage from %s", cardName, amount, status),
	}
}

func NewKnockoutEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventKnockout,
		Card:    cardName,
		Details: fmt.Sprintf("%s is knocked out", cardName),
	}
}

func NewPointsAwardedEvent(turn int, phase string, player int, points int, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPointsAwarded,
		Details: fmt.Sprintf("%s takes %d point(s) (%d/3)", playerName(player), points, total),
	}
}

func NewHandSizeDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHandSizeDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s to the hand-size limit", playerName(player), cardName),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their deck", playerName(player)),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewTieEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTie,
		Details: "Game ends in a tie",
	}
}

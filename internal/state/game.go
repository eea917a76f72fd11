package state

import (
	"fmt"

	"github.com/tcgpocket/pocketrules/internal/rng"
)

// InvariantViolation reports a GameState that fails a structural invariant
// this should never surface from a correctly
// implemented engine; it exists so tests and the engine's own defensive
// checks can report a bug precisely instead of corrupting state silently.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// GameState is the complete, immutable snapshot of a duel in progress.
// Every transition in internal/engine takes a GameState by value and
// returns a new GameState by value.
type GameState struct {
	Players      [2]PlayerState
	ActiveTag    PlayerTag
	Phase        Phase
	TurnNumber   int
	IsFirstTurn  bool // true only during player A's very first turn (no energy attach, no attack)
	RNG          rng.Source
	Winner       *PlayerTag // nil while the game is ongoing
	WinReason    string
}

// Active returns the state of the player whose turn it is.
func (g GameState) Active() PlayerState {
	return g.Players[g.ActiveTag]
}

// Inactive returns the state of the player waiting their turn.
func (g GameState) Inactive() PlayerState {
	return g.Players[g.ActiveTag.Opponent()]
}

// WithActive returns a copy with the active player's state replaced.
func (g GameState) WithActive(p PlayerState) GameState {
	ng := g
	ng.Players[g.ActiveTag] = p
	return ng
}

// WithInactive returns a copy with the inactive player's state replaced.
func (g GameState) WithInactive(p PlayerState) GameState {
	ng := g
	ng.Players[g.ActiveTag.Opponent()] = p
	return ng
}

// WithPlayer returns a copy with the named player's state replaced.
func (g GameState) WithPlayer(tag PlayerTag, p PlayerState) GameState {
	ng := g
	ng.Players[tag] = p
	return ng
}

// WithRNG returns a copy carrying the advanced RNG source.
func (g GameState) WithRNG(r rng.Source) GameState {
	ng := g
	ng.RNG = r
	return ng
}

// WithPhase returns a copy in the given phase.
func (g GameState) WithPhase(p Phase) GameState {
	ng := g
	ng.Phase = p
	return ng
}

// WithWinner returns a copy recording game-over state.
func (g GameState) WithWinner(tag PlayerTag, reason string) GameState {
	ng := g
	t := tag
	ng.Winner = &t
	ng.WinReason = reason
	return ng
}

// IsOver reports whether the game has ended.
func (g GameState) IsOver() bool {
	return g.Winner != nil
}

// AdvancePhase moves to the next phase in the fixed cycle
// Draw → Main → Attack → Checkup → End → (next player's) Draw. On the
// End→Draw wraparound it flips the active player, increments TurnNumber,
// and resets the newly active player's per-turn flags.
func (g GameState) AdvancePhase() GameState {
	ng := g
	idx := 0
	for i, p := range phaseOrder {
		if p == g.Phase {
			idx = i
			break
		}
	}
	next := phaseOrder[(idx+1)%len(phaseOrder)]
	ng.Phase = next
	if next == PhaseDraw {
		ng.ActiveTag = g.ActiveTag.Opponent()
		ng.TurnNumber++
		ng.IsFirstTurn = false
		ng.Players[ng.ActiveTag] = ng.Players[ng.ActiveTag].WithTurnFlagsReset()
	}
	return ng
}

// CheckInvariants validates the structural invariants that are
// cheap to check after every transition: bench size bound, points within
// 0..PointsToWin, 1-3 registered energy types, and no bench Tool without a
// Pokémon card. (At most one status condition is guaranteed by the
// StatusCondition field shape.) Hand size and the energy zone are not checked.
// Returns the first violation found, or nil.
func (g GameState) CheckInvariants() error {
	for tag, p := range g.Players {
		if len(p.Bench) > MaxBenchSize {
			return &InvariantViolation{Reason: fmt.Sprintf("player %d bench exceeds %d slots", tag, MaxBenchSize)}
		}
		if p.Points < 0 || p.Points > PointsToWin {
			return &InvariantViolation{Reason: fmt.Sprintf("player %d points %d out of range", tag, p.Points)}
		}
		if len(p.RegisteredTypes) < 1 || len(p.RegisteredTypes) > 3 {
			return &InvariantViolation{Reason: fmt.Sprintf("player %d has %d registered energy types", tag, len(p.RegisteredTypes))}
		}
		for i, b := range p.Bench {
			if b.Tool != nil && b.Card == nil {
				return &InvariantViolation{Reason: fmt.Sprintf("player %d bench slot %d has a tool but no Pokémon", tag, i)}
			}
		}
	}
	return nil
}

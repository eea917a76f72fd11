package engine

import (
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/registry"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// ExecuteAction dispatches a single Action (as produced by LegalActions)
// against g, returning the resulting state. ActionPassTurn advances the
// phase; every other action type delegates to its dedicated engine
// function. This is the one entry point internal/env.Step calls.
func ExecuteAction(g state.GameState, reg *registry.TrainerRegistry, a Action, logger log.EventLogger) (state.GameState, error) {
	switch a.Type {
	case ActionPlayPokemonActive:
		return PlayPokemon(g, a.HandIndex, true, 0, logger)
	case ActionPlayPokemonBench:
		return PlayPokemon(g, a.HandIndex, false, 0, logger)
	case ActionEvolve:
		return EvolvePokemon(g, a.HandIndex, a.BenchSlot < 0, a.BenchSlot, logger)
	case ActionAttachEnergy:
		return AttachEnergy(g, a.BenchSlot < 0, a.BenchSlot, logger)
	case ActionRetreat:
		return Retreat(g, a.BenchSlot, logger)
	case ActionPlayTrainer:
		chosen := a.BenchSlot
		if chosen == noTarget {
			chosen = -1
		}
		return PlayTrainer(g, reg, a.HandIndex, chosen, logger)
	case ActionAttack:
		return ExecuteAttack(g, a.AttackIndex, logger)
	case ActionPassTurn:
		return AdvancePhase(g, logger)
	case ActionPromote:
		return Promote(g, a.BenchSlot, logger)
	default:
		return g, newError(IllegalAction, "unknown action type %v", a.Type)
	}
}

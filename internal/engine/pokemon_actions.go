package engine

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// PlayPokemon places a Basic Pokémon from the acting player's hand onto
// the board — into the empty active spot, or onto an open bench slot.
// Legal only during Main phase. Evolution is a separate operation
// (EvolvePokemon) even when the hand card shares a name with an in-play
// Pokémon.
func PlayPokemon(g state.GameState, handIndex int, toActive bool, benchSlot int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseMain {
		return g, newError(PhaseMismatch, "Pokémon may only be played during Main phase")
	}
	p := g.Players[g.ActiveTag]
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return g, newError(IllegalAction, "hand index %d out of range", handIndex)
	}
	c := p.Hand[handIndex]
	if !c.IsBasicPokemon() {
		return g, newError(IllegalAction, "%s is not a Basic Pokémon", c.Name)
	}
	if toActive {
		if p.Active != nil {
			return g, newError(IllegalAction, "active spot is already occupied")
		}
	} else {
		if !p.HasBenchRoom() {
			return g, newError(IllegalAction, "bench is full")
		}
	}

	pk := state.PokemonInPlay{Card: c, PlacedTurn: g.TurnNumber}
	p = p.WithCardRemovedFromHand(handIndex)
	if toActive {
		p = p.WithActive(&pk)
	} else {
		p = p.WithBenchAppended(pk)
	}
	g = g.WithPlayer(g.ActiveTag, p)
	logEvent(logger, log.NewPlayPokemonEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), c.Name, !toActive))
	return g, nil
}

// EvolvePokemon evolves one of the acting player's own in-play Pokémon
// using an evolution card from hand. Illegal the turn a Pokémon entered
// play and illegal more than once per Pokémon per turn.
func EvolvePokemon(g state.GameState, handIndex int, targetIsActive bool, targetBenchIndex int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseMain {
		return g, newError(PhaseMismatch, "evolution is only legal during Main phase")
	}
	p := g.Players[g.ActiveTag]
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return g, newError(IllegalAction, "hand index %d out of range", handIndex)
	}
	evo := p.Hand[handIndex]
	if evo.Kind != card.KindPokemon || evo.Pokemon == nil {
		return g, newError(IllegalAction, "%s is not a Pokémon card", evo.Name)
	}

	var target *state.PokemonInPlay
	if targetIsActive {
		target = p.Active
	} else if targetBenchIndex >= 0 && targetBenchIndex < len(p.Bench) {
		target = &p.Bench[targetBenchIndex]
	}
	if target == nil {
		return g, newError(IllegalAction, "no Pokémon in that spot to evolve")
	}
	if target.Card.Name != evo.Pokemon.EvolvesFrom {
		return g, newError(IllegalAction, "%s does not evolve from %s", evo.Name, target.Card.Name)
	}
	if target.PlacedTurn == g.TurnNumber {
		return g, newError(IllegalAction, "a Pokémon cannot evolve the turn it entered play")
	}
	if target.EvolvedThisTurn {
		return g, newError(IllegalAction, "%s has already evolved this turn", target.Card.Name)
	}

	evolved := *target
	evolved.Card = evo
	evolved.PlacedTurn = target.PlacedTurn
	evolved.EvolvedThisTurn = true
	evolved.Status = 0 // evolving clears any status condition

	p = p.WithCardRemovedFromHand(handIndex)
	if targetIsActive {
		p = p.WithActive(&evolved)
	} else {
		p = p.WithBenchAt(targetBenchIndex, evolved)
	}
	fromName := target.Card.Name
	g = g.WithPlayer(g.ActiveTag, p)
	logEvent(logger, log.NewEvolveEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), fromName, evo.Name))
	return g, nil
}

// AttachEnergy attaches the acting player's ready energy-zone energy to
// one of their own Pokémon. Once per turn, and never on player A's very
// first turn.
func AttachEnergy(g state.GameState, targetIsActive bool, targetBenchIndex int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseMain {
		return g, newError(PhaseMismatch, "energy may only be attached during Main phase")
	}
	if g.IsFirstTurn && g.ActiveTag == state.PlayerA {
		return g, newError(IllegalAction, "the first player may not attach energy on their first turn")
	}
	p := g.Players[g.ActiveTag]
	if !p.CanAttachEnergy() {
		return g, newError(IllegalAction, "energy has already been attached this turn, or none is ready")
	}

	var target *state.PokemonInPlay
	var setTarget func(state.PokemonInPlay)
	if targetIsActive {
		target = p.Active
		setTarget = func(pk state.PokemonInPlay) { p = p.WithActive(&pk) }
	} else if targetBenchIndex >= 0 && targetBenchIndex < len(p.Bench) {
		t := p.Bench[targetBenchIndex]
		target = &t
		setTarget = func(pk state.PokemonInPlay) { p = p.WithBenchAt(targetBenchIndex, pk) }
	}
	if target == nil {
		return g, newError(IllegalAction, "no Pokémon in that spot")
	}

	energyType := p.EnergyZoneReady
	setTarget(target.WithAttachedEnergy(energyType))
	p = p.WithEnergyZoneConsumed()
	g = g.WithPlayer(g.ActiveTag, p)
	logEvent(logger, log.NewEnergyAttachedEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), energyType.String(), target.Card.Name))
	return g, nil
}

// Promote fills an empty active slot from the bench for whichever player
// currently owes the replacement (see playerOwingReplacement) — not
// necessarily the turn's active player. Legal in any phase as soon as a
// replacement is owed. If the game is already sitting in a decision phase
// the player keeps their turn after promoting; otherwise promoting resumes
// the automatic-phase cascade that was paused to ask for it.
func Promote(g state.GameState, benchIndex int, logger log.EventLogger) (state.GameState, error) {
	tag, owed := playerOwingReplacement(g)
	if !owed {
		return g, newError(IllegalAction, "no active-slot replacement is owed")
	}
	p := g.Players[tag]
	if benchIndex < 0 || benchIndex >= len(p.Bench) {
		return g, newError(IllegalAction, "bench index %d out of range", benchIndex)
	}

	incoming := p.Bench[benchIndex]
	p = p.WithBenchRemoved(benchIndex)
	p = p.WithActive(&incoming)
	g = g.WithPlayer(tag, p)
	logEvent(logger, log.NewPromoteEvent(g.TurnNumber, g.Phase.String(), int(tag), incoming.Card.Name))

	if g.Phase == state.PhaseMain || g.Phase == state.PhaseAttack {
		return g, nil
	}
	return AdvancePhase(g, logger)
}

// Retreat swaps the acting player's active Pokémon for a benched one,
// paying the active Pokémon's retreat cost in attached energy (discarded,
// any type). Illegal if the active Pokémon has a status condition that
// prevents retreating (Asleep or Paralyzed), or doesn't have enough energy
// attached to pay the cost. Evolving this turn does not prevent a retreat.
func Retreat(g state.GameState, benchIndex int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseMain {
		return g, newError(PhaseMismatch, "retreating is only legal during Main phase")
	}
	p := g.Players[g.ActiveTag]
	if p.Active == nil {
		return g, newError(IllegalAction, "no active Pokémon to retreat")
	}
	if benchIndex < 0 || benchIndex >= len(p.Bench) {
		return g, newError(IllegalAction, "bench index %d out of range", benchIndex)
	}
	active := *p.Active
	if active.Status == card.Asleep || active.Status == card.Paralyzed {
		return g, newError(IllegalAction, "%s cannot retreat while %s", active.Card.Name, active.Status.String())
	}
	cost := active.Card.Pokemon.RetreatCost
	if len(active.AttachedEnergy) < cost {
		return g, newError(IllegalAction, "not enough energy attached to pay the retreat cost")
	}

	remaining := active.AttachedEnergy[cost:]
	active.AttachedEnergy = append([]card.EnergyType(nil), remaining...)

	incoming := p.Bench[benchIndex]
	p = p.WithBenchRemoved(benchIndex)
	p = p.WithBenchAppended(active)
	p = p.WithActive(&incoming)
	g = g.WithPlayer(g.ActiveTag, p)
	logEvent(logger, log.NewRetreatEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), active.Card.Name, incoming.Card.Name))
	return g, nil
}

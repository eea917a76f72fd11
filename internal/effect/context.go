// Package effect implements the effect DSL: small composable
// Condition / Selection / Action stages run in a Pipeline against an
// EffectContext, with short-circuit-on-failure semantics. Trainer cards
// are expressed as pipelines built from these primitives — see
// internal/registry for how a card's name or EffectText resolves to a
// compiled Pipeline. Attack effects are not pipelines: they are
// card.AttackEffect data applied by the engine's attack code.
package effect

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// PokemonRef identifies one Pokémon-in-play slot: a player's active spot,
// or one of their bench slots.
type PokemonRef struct {
	Owner      state.PlayerTag
	IsActive   bool
	BenchIndex int
}

// Get reads the referenced Pokémon from g, or (zero, false) if the slot is
// empty (e.g. a knocked-out active between replacement steps).
func (r PokemonRef) Get(g state.GameState) (state.PokemonInPlay, bool) {
	p := g.Players[r.Owner]
	if r.IsActive {
		if p.Active == nil {
			return state.PokemonInPlay{}, false
		}
		return *p.Active, true
	}
	if r.BenchIndex < 0 || r.BenchIndex >= len(p.Bench) {
		return state.PokemonInPlay{}, false
	}
	return p.Bench[r.BenchIndex], true
}

// Set returns a copy of g with the referenced slot replaced by pk.
func (r PokemonRef) Set(g state.GameState, pk state.PokemonInPlay) state.GameState {
	p := g.Players[r.Owner]
	if r.IsActive {
		p = p.WithActive(&pk)
	} else {
		p = p.WithBenchAt(r.BenchIndex, pk)
	}
	return g.WithPlayer(r.Owner, p)
}

// EffectContext threads state through a Pipeline. Actor is the player
// whose card is resolving; Targets accumulates the PokemonRefs a Selection
// stage picked out for subsequent Action stages to operate on. Failed is
// set by a Condition that isn't met, or an Action that can't legally
// apply (e.g. healing with no target selected); once set, the Pipeline
// stops running further stages and the caller must not commit State.
type EffectContext struct {
	State   state.GameState
	Actor   state.PlayerTag
	Targets []PokemonRef
	Failed  bool
	// LastCoinHeads carries the result of the most recent coin-flip Action
	// so a following Action (e.g. "deal 20 more damage for each heads") can
	// read it without a shared mutable side channel.
	LastCoinHeads int
	// SourceCard is the trainer/attack card driving this pipeline, for
	// log messages and self-referential effects ("discard an Energy from
	// this Pokémon").
	SourceCard *card.Card
	SourceRef  PokemonRef
	// ChosenIndex carries a player-supplied target index (e.g. which
	// bench slot a "heal 1 of your Pokémon" card applies to) from the
	// engine's Action payload into a Selection stage — see
	// PlayerChoosesOwnPokemon.
	ChosenIndex int
}

func (c EffectContext) opponent() state.PlayerTag { return c.Actor.Opponent() }

// Stage is the sum type of the three pipeline stage kinds. Condition,
// Selection, and Action each implement it via an unexported marker method
// so a Pipeline can only ever hold one of the three.
type Stage interface {
	run(EffectContext) EffectContext
	isStage()
}

// Condition stops the pipeline (sets Failed) when its predicate isn't met.
type Condition func(EffectContext) bool

func (c Condition) run(ctx EffectContext) EffectContext {
	if !c(ctx) {
		ctx.Failed = true
	}
	return ctx
}
func (c Condition) isStage() {}

// Selection replaces ctx.Targets with the PokemonRefs it picks.
type Selection func(EffectContext) ([]PokemonRef, bool)

func (s Selection) run(ctx EffectContext) EffectContext {
	targets, ok := s(ctx)
	if !ok {
		ctx.Failed = true
		return ctx
	}
	ctx.Targets = targets
	return ctx
}
func (s Selection) isStage() {}

// Action mutates ctx.State (and may itself fail, e.g. no target selected).
type Action func(EffectContext) EffectContext

func (a Action) run(ctx EffectContext) EffectContext { return a(ctx) }
func (a Action) isStage()                            {}

// Pipeline is an ordered list of stages run with short-circuit-on-failure.
type Pipeline []Stage

// Run executes every stage in order, stopping as soon as Failed is set.
// The caller should only commit ctx.State back into the engine's GameState
// if the returned context's Failed is false.
func (p Pipeline) Run(ctx EffectContext) EffectContext {
	for _, stage := range p {
		if ctx.Failed {
			break
		}
		ctx = stage.run(ctx)
	}
	return ctx
}

package effect

import "github.com/tcgpocket/pocketrules/internal/card"

// SetTargetToOwnActive selects the acting player's own active Pokémon.
func SetTargetToOwnActive() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		if ctx.State.Players[ctx.Actor].Active == nil {
			return nil, false
		}
		return []PokemonRef{{Owner: ctx.Actor, IsActive: true}}, true
	}
}

// SetTargetToOpponentActive selects the opponent's active Pokémon.
func SetTargetToOpponentActive() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		if ctx.State.Players[ctx.opponent()].Active == nil {
			return nil, false
		}
		return []PokemonRef{{Owner: ctx.opponent(), IsActive: true}}, true
	}
}

// AllOwnPokemon selects every Pokémon in play the acting player controls.
func AllOwnPokemon() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		p := ctx.State.Players[ctx.Actor]
		refs := make([]PokemonRef, 0, 1+len(p.Bench))
		if p.Active != nil {
			refs = append(refs, PokemonRef{Owner: ctx.Actor, IsActive: true})
		}
		for i := range p.Bench {
			refs = append(refs, PokemonRef{Owner: ctx.Actor, BenchIndex: i})
		}
		return refs, len(refs) > 0
	}
}

// PlayerChoosesOwnPokemon selects one of the acting player's Pokémon in
// play (active, if ctx.ChosenIndex is -1, otherwise the bench slot at
// ctx.ChosenIndex) — the index is supplied per-play by the engine from
// the caller's chosen action, since a card like "heal 20 from 1 of your
// Pokémon" names no fixed target at registry-build time.
func PlayerChoosesOwnPokemon() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		p := ctx.State.Players[ctx.Actor]
		if ctx.ChosenIndex < 0 {
			if p.Active == nil {
				return nil, false
			}
			return []PokemonRef{{Owner: ctx.Actor, IsActive: true}}, true
		}
		if ctx.ChosenIndex >= len(p.Bench) {
			return nil, false
		}
		return []PokemonRef{{Owner: ctx.Actor, BenchIndex: ctx.ChosenIndex}}, true
	}
}

// OpponentChoosesBenched selects one of the opponent's benched Pokémon;
// in this deterministic engine "opponent chooses" resolves to the lowest
// remaining-HP benched Pokémon, a fixed tie-break so the effect stays pure.
func OpponentChoosesBenched() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		p := ctx.State.Players[ctx.opponent()]
		if len(p.Bench) == 0 {
			return nil, false
		}
		best := 0
		for i, b := range p.Bench {
			if b.RemainingHP() < p.Bench[best].RemainingHP() {
				best = i
			}
		}
		return []PokemonRef{{Owner: ctx.opponent(), BenchIndex: best}}, true
	}
}

// RandomOpponentBenched selects one of the opponent's benched Pokémon at
// random, consuming and advancing ctx.State.RNG.
func RandomOpponentBenched() Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		p := ctx.State.Players[ctx.opponent()]
		if len(p.Bench) == 0 {
			return nil, false
		}
		idx, next := ctx.State.RNG.Intn(len(p.Bench))
		ctx.State = ctx.State.WithRNG(next)
		return []PokemonRef{{Owner: ctx.opponent(), BenchIndex: idx}}, true
	}
}

// SetTargetsToPlayerPokemonOfType selects every one of the acting player's
// Pokémon of the given type.
func SetTargetsToPlayerPokemonOfType(t card.EnergyType) Selection {
	return func(ctx EffectContext) ([]PokemonRef, bool) {
		p := ctx.State.Players[ctx.Actor]
		var refs []PokemonRef
		if p.Active != nil && p.Active.Card.Pokemon != nil && p.Active.Card.Pokemon.Type == t {
			refs = append(refs, PokemonRef{Owner: ctx.Actor, IsActive: true})
		}
		for i, b := range p.Bench {
			if b.Card.Pokemon != nil && b.Card.Pokemon.Type == t {
				refs = append(refs, PokemonRef{Owner: ctx.Actor, BenchIndex: i})
			}
		}
		return refs, len(refs) > 0
	}
}

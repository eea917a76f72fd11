package effect

import "github.com/tcgpocket/pocketrules/internal/card"

// RequireBenchPokemon fails unless the acting player has at least one
// benched Pokémon.
func RequireBenchPokemon() Condition {
	return func(ctx EffectContext) bool {
		return ctx.State.Players[ctx.Actor].BenchedCount() > 0
	}
}

// RequireOpponentBenchPokemon fails unless the opponent has at least one
// benched Pokémon.
func RequireOpponentBenchPokemon() Condition {
	return func(ctx EffectContext) bool {
		return ctx.State.Players[ctx.opponent()].BenchedCount() > 0
	}
}

// RequireDamagedPokemon fails unless at least one of the acting player's
// Pokémon in play has damage on it.
func RequireDamagedPokemon() Condition {
	return func(ctx EffectContext) bool {
		for _, p := range ctx.State.Players[ctx.Actor].AllPokemon() {
			if p.Damage > 0 {
				return true
			}
		}
		return false
	}
}

// RequireEnergyInZone fails unless the acting player's energy zone
// currently holds a ready energy.
func RequireEnergyInZone() Condition {
	return func(ctx EffectContext) bool {
		return ctx.State.Players[ctx.Actor].EnergyZoneHasOne
	}
}

// RequirePokemonType fails unless ctx.Targets (already selected) are all
// of the given energy type.
func RequirePokemonType(t card.EnergyType) Condition {
	return func(ctx EffectContext) bool {
		if len(ctx.Targets) == 0 {
			return false
		}
		for _, ref := range ctx.Targets {
			pk, ok := ref.Get(ctx.State)
			if !ok || pk.Card == nil || pk.Card.Pokemon == nil || pk.Card.Pokemon.Type != t {
				return false
			}
		}
		return true
	}
}

// RequireSpecificPokemon fails unless ctx.Targets' card name matches name.
func RequireSpecificPokemon(name string) Condition {
	return func(ctx EffectContext) bool {
		if len(ctx.Targets) == 0 {
			return false
		}
		for _, ref := range ctx.Targets {
			pk, ok := ref.Get(ctx.State)
			if !ok || pk.Card == nil || pk.Card.Name != name {
				return false
			}
		}
		return true
	}
}

// RequireActivePokemon fails unless the acting player has an active
// Pokémon.
func RequireActivePokemon() Condition {
	return func(ctx EffectContext) bool {
		return ctx.State.Players[ctx.Actor].Active != nil
	}
}

// RequirePokemonInDiscard fails unless the acting player's discard pile
// contains at least one Pokémon card.
func RequirePokemonInDiscard() Condition {
	return func(ctx EffectContext) bool {
		for _, c := range ctx.State.Players[ctx.Actor].Discard {
			if c.Kind == card.KindPokemon {
				return true
			}
		}
		return false
	}
}

// RequireToolFree fails unless ctx.Targets' Pokémon has no tool attached
// yet (at most one Tool per Pokémon).
func RequireToolFree() Condition {
	return func(ctx EffectContext) bool {
		for _, ref := range ctx.Targets {
			pk, ok := ref.Get(ctx.State)
			if !ok || pk.Tool != nil {
				return false
			}
		}
		return true
	}
}

package effect

import (
	"sort"

	"github.com/tcgpocket/pocketrules/internal/card"
)

// SwitchActiveWithTarget swaps ctx.Targets[0] (which must be a benched
// Pokémon belonging to its owner) into the active slot, sending the
// previous active to the bench.
func SwitchActiveWithTarget() Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		if ref.IsActive {
			ctx.Failed = true
			return ctx
		}
		newActive, ok := ref.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		p := ctx.State.Players[ref.Owner]
		oldActive := p.Active
		p = p.WithBenchRemoved(ref.BenchIndex)
		if oldActive != nil {
			p = p.WithBenchAppended(*oldActive)
		}
		p = p.WithActive(&newActive)
		ctx.State = ctx.State.WithPlayer(ref.Owner, p)
		return ctx
	}
}

// ReturnTargetsToHand sends every selected Pokémon back to its owner's
// hand as a card and discards any attached Tool. Attached energy has no
// card representation in this engine (it is tracked as a count of
// EnergyType values, not as discardable Card objects), so it simply
// evaporates along with the Pokémon rather than moving to a discard pile.
func ReturnTargetsToHand() Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		// Remove higher bench indices first so earlier removals do not
		// shift the slots of targets still to be returned.
		refs := append([]PokemonRef(nil), ctx.Targets...)
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].IsActive != refs[j].IsActive {
				return refs[i].IsActive
			}
			return refs[i].BenchIndex > refs[j].BenchIndex
		})
		for _, ref := range refs {
			pk, ok := ref.Get(ctx.State)
			if !ok {
				continue
			}
			owner := ctx.State.Players[ref.Owner]
			if ref.IsActive {
				owner = owner.WithActive(nil)
			} else {
				owner = owner.WithBenchRemoved(ref.BenchIndex)
			}
			if pk.Tool != nil {
				owner = owner.WithCardDiscarded(pk.Tool)
			}
			owner = owner.WithCardAddedToHand(pk.Card)
			ctx.State = ctx.State.WithPlayer(ref.Owner, owner)
		}
		return ctx
	}
}

// HealTargets removes up to amount damage from every selected Pokémon.
func HealTargets(amount int) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		for _, ref := range ctx.Targets {
			pk, ok := ref.Get(ctx.State)
			if !ok {
				continue
			}
			ctx.State = ref.Set(ctx.State, pk.WithDamage(-amount))
		}
		return ctx
	}
}

// ApplyStatus sets the given status condition on every selected Pokémon.
func ApplyStatus(s card.StatusCondition) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		for _, ref := range ctx.Targets {
			pk, ok := ref.Get(ctx.State)
			if !ok {
				continue
			}
			ctx.State = ref.Set(ctx.State, pk.WithStatus(s))
		}
		return ctx
	}
}

// AttachEnergyFromZoneToTarget moves the acting player's ready zone energy
// onto the selected Pokémon. It spends the turn's zone energy the same way
// the normal attach does: the zone is emptied and EnergyAttachedThisTurn
// is set, so no further attach is possible this turn.
func AttachEnergyFromZoneToTarget() Action {
	return func(ctx EffectContext) EffectContext {
		p := ctx.State.Players[ctx.Actor]
		if !p.EnergyZoneHasOne || len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		pk, ok := ref.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		energy := p.EnergyZoneReady
		ctx.State = ctx.State.WithPlayer(ctx.Actor, p.WithEnergyZone(energy).WithEnergyZoneConsumed())
		ctx.State = ref.Set(ctx.State, pk.WithAttachedEnergy(energy))
		return ctx
	}
}

// AttachEnergyFromDiscardToTarget attaches one energy of the given type
// onto the selected Pokémon. This engine does not model discarded
// "energy cards" as objects (the card model has no EnergyCard case), so
// this draws from the player's registered types directly rather than a
// discard pile of energy-card objects, reaching the same net effect.
func AttachEnergyFromDiscardToTarget(t card.EnergyType) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		pk, ok := ref.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		ctx.State = ref.Set(ctx.State, pk.WithAttachedEnergy(t))
		return ctx
	}
}

// MoveOneEnergyBetweenTargets moves one energy of type t from
// ctx.Targets[0] to ctx.Targets[1].
func MoveOneEnergyBetweenTargets(t card.EnergyType) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) != 2 {
			ctx.Failed = true
			return ctx
		}
		from, to := ctx.Targets[0], ctx.Targets[1]
		fromPk, ok := from.Get(ctx.State)
		if !ok || fromPk.EnergyCount(t) == 0 {
			ctx.Failed = true
			return ctx
		}
		toPk, ok := to.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		removed := false
		remaining := make([]card.EnergyType, 0, len(fromPk.AttachedEnergy))
		for _, e := range fromPk.AttachedEnergy {
			if !removed && (e == t || t == card.Colorless) {
				removed = true
				continue
			}
			remaining = append(remaining, e)
		}
		fromPk.AttachedEnergy = remaining
		ctx.State = from.Set(ctx.State, fromPk)
		toPk = toPk.WithAttachedEnergy(t)
		ctx.State = to.Set(ctx.State, toPk)
		return ctx
	}
}

// FlipCoinsUntilTailsBonus flips coins until the first tails and stores
// the head count in ctx.LastCoinHeads for a following action to read.
func FlipCoinsUntilTailsBonus(max int) Action {
	return func(ctx EffectContext) EffectContext {
		heads, next := ctx.State.RNG.CoinFlipsUntilTails(max)
		ctx.State = ctx.State.WithRNG(next)
		ctx.LastCoinHeads = heads
		return ctx
	}
}

// FlipCoinDamageOrFail flips one coin; on tails the pipeline fails (used
// for "flip a coin. If tails, this attack does nothing" effects).
func FlipCoinDamageOrFail() Action {
	return func(ctx EffectContext) EffectContext {
		heads, next := ctx.State.RNG.CoinFlip()
		ctx.State = ctx.State.WithRNG(next)
		ctx.LastCoinHeads = map[bool]int{true: 1}[heads]
		if !heads {
			ctx.Failed = true
		}
		return ctx
	}
}

// AttachEnergyFromZonePerHeads attaches one energy from the zone for each
// head recorded in ctx.LastCoinHeads, capped by however much the zone
// actually holds in a turn (at most one, since the zone holds a single
// ready energy). Pairs with FlipCoinsUntilTailsBonus for "flip until tails,
// attach energy for each heads" effects.
func AttachEnergyFromZonePerHeads() Action {
	return func(ctx EffectContext) EffectContext {
		if ctx.LastCoinHeads <= 0 || len(ctx.Targets) == 0 {
			return ctx
		}
		return AttachEnergyFromZoneToTarget()(ctx)
	}
}

// DamageBonusThisTurn records a one-turn damage bonus on the selected
// Pokémon's next attack.
func DamageBonusThisTurn(amount int) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		pk, ok := ref.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		pk.DamageBonusTurn = ctx.State.TurnNumber
		pk.DamageBonusValue = amount
		ctx.State = ref.Set(ctx.State, pk)
		return ctx
	}
}

// SearchDeckForBasicPokemon moves the first Basic Pokémon found in the
// acting player's deck into their hand and shuffles the remainder. Deck
// order is irrelevant for RNG determinism here because it is immediately
// reshuffled; the scan order itself never touches the RNG.
func SearchDeckForBasicPokemon() Action {
	return func(ctx EffectContext) EffectContext {
		p := ctx.State.Players[ctx.Actor]
		idx := -1
		for i, c := range p.Deck {
			if c.IsBasicPokemon() {
				idx = i
				break
			}
		}
		if idx < 0 {
			ctx.Failed = true
			return ctx
		}
		found := p.Deck[idx]
		remaining := append(append([]*card.Card(nil), p.Deck[:idx]...), p.Deck[idx+1:]...)
		perm, next := ctx.State.RNG.Shuffle(len(remaining))
		ctx.State = ctx.State.WithRNG(next)
		shuffled := make([]*card.Card, len(remaining))
		for i, j := range perm {
			shuffled[i] = remaining[j]
		}
		p.Deck = shuffled
		p = p.WithCardAddedToHand(found)
		ctx.State = ctx.State.WithPlayer(ctx.Actor, p)
		return ctx
	}
}

// ShuffleHandIntoDeckAndDraw returns the acting player's whole hand to
// their deck, shuffles, then draws n cards.
func ShuffleHandIntoDeckAndDraw(n int) Action {
	return func(ctx EffectContext) EffectContext {
		p := ctx.State.Players[ctx.Actor]
		combined := append(append([]*card.Card(nil), p.Deck...), p.Hand...)
		perm, next := ctx.State.RNG.Shuffle(len(combined))
		ctx.State = ctx.State.WithRNG(next)
		shuffled := make([]*card.Card, len(combined))
		for i, j := range perm {
			shuffled[i] = combined[j]
		}
		p.Deck = shuffled
		p.Hand = nil
		draw := n
		if draw > len(p.Deck) {
			draw = len(p.Deck)
		}
		for i := 0; i < draw; i++ {
			p = p.WithDrawnCard()
		}
		ctx.State = ctx.State.WithPlayer(ctx.Actor, p)
		return ctx
	}
}

// DrawCards draws n cards for the acting player, stopping early (without
// failing the pipeline) if the deck runs out — deck-out is a loss
// condition checked independently by the engine, not an effect failure.
func DrawCards(n int) Action {
	return func(ctx EffectContext) EffectContext {
		p := ctx.State.Players[ctx.Actor]
		for i := 0; i < n && len(p.Deck) > 0; i++ {
			p = p.WithDrawnCard()
		}
		ctx.State = ctx.State.WithPlayer(ctx.Actor, p)
		return ctx
	}
}

// AttachToolToTarget attaches SourceCard as a Tool onto ctx.Targets[0].
// Caller must have already checked RequireToolFree.
func AttachToolToTarget() Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 || ctx.SourceCard == nil {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		pk, ok := ref.Get(ctx.State)
		if !ok || pk.Tool != nil {
			ctx.Failed = true
			return ctx
		}
		pk.Tool = ctx.SourceCard
		ctx.State = ref.Set(ctx.State, pk)
		return ctx
	}
}

// DiscardOwnEnergy removes one energy of type t from ctx.Targets[0].
func DiscardOwnEnergy(t card.EnergyType) Action {
	return func(ctx EffectContext) EffectContext {
		if len(ctx.Targets) == 0 {
			ctx.Failed = true
			return ctx
		}
		ref := ctx.Targets[0]
		pk, ok := ref.Get(ctx.State)
		if !ok {
			ctx.Failed = true
			return ctx
		}
		removed := false
		remaining := make([]card.EnergyType, 0, len(pk.AttachedEnergy))
		for _, e := range pk.AttachedEnergy {
			if !removed && (e == t || t == card.Colorless) {
				removed = true
				continue
			}
			remaining = append(remaining, e)
		}
		if !removed {
			ctx.Failed = true
			return ctx
		}
		pk.AttachedEnergy = remaining
		ctx.State = ref.Set(ctx.State, pk)
		return ctx
	}
}

package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/rng"
	"github.com/tcgpocket/pocketrules/internal/state"
)

func mon(t *testing.T, name string, hp, damage int, typ card.EnergyType) state.PokemonInPlay {
	t.Helper()
	c, err := card.NewPokemonCard("T-001", name, "T", card.PokemonData{
		HP: hp, Type: typ, Stage: card.Basic, RetreatCost: 1,
	})
	require.NoError(t, err)
	pk := state.PokemonInPlay{Card: c}
	return pk.WithDamage(damage)
}

func baseContext(actor state.PlayerTag, a, b state.PlayerState) EffectContext {
	g := state.GameState{
		Players:   [2]state.PlayerState{a, b},
		ActiveTag: actor,
		RNG:       rng.NewSource(5),
	}
	return EffectContext{State: g, Actor: actor, ChosenIndex: -1}
}

func TestPipelineShortCircuitsOnFailedCondition(t *testing.T) {
	ran := false
	pipeline := Pipeline{
		Condition(func(EffectContext) bool { return false }),
		Action(func(ctx EffectContext) EffectContext { ran = true; return ctx }),
	}
	ctx := pipeline.Run(EffectContext{})
	assert.True(t, ctx.Failed)
	assert.False(t, ran, "action after a failed condition must not run")
}

func TestPipelineRunsAllStagesWhenConditionsHold(t *testing.T) {
	pipeline := Pipeline{
		Condition(func(EffectContext) bool { return true }),
		Action(func(ctx EffectContext) EffectContext { ctx.LastCoinHeads = 3; return ctx }),
	}
	ctx := pipeline.Run(EffectContext{})
	assert.False(t, ctx.Failed)
	assert.Equal(t, 3, ctx.LastCoinHeads)
}

func TestRequireDamagedPokemon(t *testing.T) {
	healthy := mon(t, "Bulbasaur", 70, 0, card.Grass)
	damaged := mon(t, "Squirtle", 60, 20, card.Water)

	ctx := baseContext(state.PlayerA, state.PlayerState{Active: &healthy}, state.PlayerState{})
	assert.False(t, RequireDamagedPokemon()(ctx))

	ctx = baseContext(state.PlayerA, state.PlayerState{Active: &damaged}, state.PlayerState{})
	assert.True(t, RequireDamagedPokemon()(ctx))
}

func TestRequireBenchPokemon(t *testing.T) {
	ctx := baseContext(state.PlayerA, state.PlayerState{}, state.PlayerState{})
	assert.False(t, RequireBenchPokemon()(ctx))

	bench := mon(t, "Charmander", 60, 0, card.Fire)
	ctx = baseContext(state.PlayerA, state.PlayerState{Bench: []state.PokemonInPlay{bench}}, state.PlayerState{})
	assert.True(t, RequireBenchPokemon()(ctx))
}

func TestSetTargetToOwnActiveRequiresActive(t *testing.T) {
	ctx := baseContext(state.PlayerA, state.PlayerState{}, state.PlayerState{})
	_, ok := SetTargetToOwnActive()(ctx)
	assert.False(t, ok)

	active := mon(t, "Bulbasaur", 70, 0, card.Grass)
	ctx = baseContext(state.PlayerA, state.PlayerState{Active: &active}, state.PlayerState{})
	refs, ok := SetTargetToOwnActive()(ctx)
	require.True(t, ok)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].IsActive)
	assert.Equal(t, state.PlayerA, refs[0].Owner)
}

func TestAllOwnPokemonIncludesActiveAndBench(t *testing.T) {
	active := mon(t, "Bulbasaur", 70, 0, card.Grass)
	b1 := mon(t, "Squirtle", 60, 0, card.Water)
	b2 := mon(t, "Charmander", 60, 0, card.Fire)
	ctx := baseContext(state.PlayerA, state.PlayerState{Active: &active, Bench: []state.PokemonInPlay{b1, b2}}, state.PlayerState{})
	refs, ok := AllOwnPokemon()(ctx)
	require.True(t, ok)
	assert.Len(t, refs, 3)
}

func TestOpponentChoosesBenchedPicksLowestRemainingHP(t *testing.T) {
	low := mon(t, "Low", 60, 50, card.Water)   // 10 remaining
	high := mon(t, "High", 60, 10, card.Fire)  // 50 remaining
	ctx := baseContext(state.PlayerA, state.PlayerState{}, state.PlayerState{Bench: []state.PokemonInPlay{high, low}})
	refs, ok := OpponentChoosesBenched()(ctx)
	require.True(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, 1, refs[0].BenchIndex, "must pick the lower-HP bench slot")
}

func TestHealTargetsRemovesDamage(t *testing.T) {
	damaged := mon(t, "Squirtle", 60, 30, card.Water)
	ctx := baseContext(state.PlayerA, state.PlayerState{Active: &damaged}, state.PlayerState{})
	ctx.Targets = []PokemonRef{{Owner: state.PlayerA, IsActive: true}}
	ctx = HealTargets(20)(ctx)
	assert.False(t, ctx.Failed)
	pk, ok := ctx.Targets[0].Get(ctx.State)
	require.True(t, ok)
	assert.Equal(t, 10, pk.Damage)
}

func TestDrawCardsStopsAtEmptyDeckWithoutFailing(t *testing.T) {
	deck := []*card.Card{{Name: "one"}, {Name: "two"}}
	ctx := baseContext(state.PlayerA, state.PlayerState{Deck: deck}, state.PlayerState{})
	ctx = DrawCards(5)(ctx)
	assert.False(t, ctx.Failed)
	assert.Empty(t, ctx.State.Players[state.PlayerA].Deck)
	assert.Len(t, ctx.State.Players[state.PlayerA].Hand, 2)
}

func TestAttachToolToTargetRejectsSecondTool(t *testing.T) {
	withTool := mon(t, "Bulbasaur", 70, 0, card.Grass)
	withTool.Tool = &card.Card{Name: "Cape"}
	ctx := baseContext(state.PlayerA, state.PlayerState{Active: &withTool}, state.PlayerState{})
	ctx.Targets = []PokemonRef{{Owner: state.PlayerA, IsActive: true}}
	ctx.SourceCard = &card.Card{Name: "Another Tool"}
	ctx = AttachToolToTarget()(ctx)
	assert.True(t, ctx.Failed, "a Pokémon with a tool already attached must reject another")
}

func TestSwitchActiveWithTargetPromotesBenchedPokemon(t *testing.T) {
	active := mon(t, "Bulbasaur", 70, 0, card.Grass)
	bench := mon(t, "Squirtle", 60, 0, card.Water)
	ctx := baseContext(state.PlayerB, state.PlayerState{Active: &active, Bench: []state.PokemonInPlay{bench}}, state.PlayerState{})
	ctx.Targets = []PokemonRef{{Owner: state.PlayerB, BenchIndex: 0}}
	ctx = SwitchActiveWithTarget()(ctx)
	assert.False(t, ctx.Failed)
	p := ctx.State.Players[state.PlayerB]
	require.NotNil(t, p.Active)
	assert.Equal(t, "Squirtle", p.Active.Card.Name)
	require.Len(t, p.Bench, 1)
	assert.Equal(t, "Bulbasaur", p.Bench[0].Card.Name)
}

func TestReturnTargetsToHandDiscardsAttachedTool(t *testing.T) {
	withTool := mon(t, "Bulbasaur", 70, 0, card.Grass)
	tool := &card.Card{Name: "Giant Cape"}
	withTool.Tool = tool
	bare := mon(t, "Squirtle", 60, 0, card.Water)

	ctx := baseContext(state.PlayerA, state.PlayerState{Active: &withTool, Bench: []state.PokemonInPlay{bare}}, state.PlayerState{})
	ctx.Targets = []PokemonRef{{Owner: state.PlayerA, IsActive: true}, {Owner: state.PlayerA, BenchIndex: 0}}
	ctx = ReturnTargetsToHand()(ctx)
	assert.False(t, ctx.Failed)

	p := ctx.State.Players[state.PlayerA]
	assert.Nil(t, p.Active)
	assert.Empty(t, p.Bench)
	require.Len(t, p.Hand, 2)
	assert.ElementsMatch(t, []string{"Bulbasaur", "Squirtle"}, []string{p.Hand[0].Name, p.Hand[1].Name})
	require.Len(t, p.Discard, 1, "the Tool attached to the returned Pokémon must land in the discard pile, not vanish")
	assert.Same(t, tool, p.Discard[0])
}

package engine

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/effect"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/registry"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// PlayTrainer plays an Item, Supporter, or Tool card from the acting
// player's hand. The Trainer Registry resolves the card to a compiled
// effect.Pipeline by name, then by effect text; a card matching
// neither surfaces UnsupportedEffect without mutating state. One
// Supporter per turn; Tool cards additionally require a target Pokémon
// with no tool already attached.
func PlayTrainer(g state.GameState, reg *registry.TrainerRegistry, handIndex int, chosenIndex int, logger log.EventLogger) (state.GameState, error) {
	if g.Phase != state.PhaseMain {
		return g, newError(PhaseMismatch, "trainer cards may only be played during Main phase")
	}
	p := g.Players[g.ActiveTag]
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return g, newError(IllegalAction, "hand index %d out of range", handIndex)
	}
	c := p.Hand[handIndex]
	if c.Trainer == nil {
		return g, newError(IllegalAction, "%s is not a trainer card", c.Name)
	}
	if c.Trainer.Variant == card.VariantSupporter && p.SupporterPlayedThisTurn {
		return g, newError(IllegalAction, "a Supporter has already been played this turn")
	}

	pipeline, ok := reg.Resolve(c.Name, c.Trainer.EffectText)
	if !ok {
		logEvent(logger, log.NewUnsupportedEffectEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), c.Name))
		return g, newError(UnsupportedEffect, "no registered effect implementation for %s", c.Name)
	}

	ctx := effect.EffectContext{
		State:       g,
		Actor:       g.ActiveTag,
		SourceCard:  c,
		ChosenIndex: chosenIndex,
	}
	result := pipeline.Run(ctx)
	if result.Failed {
		return g, newError(IllegalAction, "%s's effect conditions were not met", c.Name)
	}

	g = result.State
	p = g.Players[g.ActiveTag]
	p = p.WithCardRemovedFromHand(handIndex)
	switch c.Trainer.Variant {
	case card.VariantTool:
		// the card now lives attached to a Pokémon, not in the discard pile.
	case card.VariantSupporter:
		p = p.WithCardDiscarded(c)
		p.SupporterPlayedThisTurn = true
	default:
		p = p.WithCardDiscarded(c)
	}
	g = g.WithPlayer(g.ActiveTag, p)
	logEvent(logger, log.NewPlayTrainerEvent(g.TurnNumber, g.Phase.String(), int(g.ActiveTag), c.Name))
	return g, nil
}

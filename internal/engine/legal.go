package engine

import (
	"fmt"

	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/registry"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// LegalActions returns every legal action for the active player in
// canonical, deterministic order, grouped by action kind. In Main phase:
// Basic Pokémon plays, evolutions, energy attaches, retreats, trainer
// plays, then pass; in Attack phase: attacks by attack index, then pass.
// Within a kind, entries follow hand index ascending, then target slot
// (active before bench, bench ascending). MCTS-style callers
// index into this slice directly, so the order must be stable across
// calls for an identical GameState.
func LegalActions(g state.GameState, reg *registry.TrainerRegistry) []Action {
	if g.IsOver() {
		return nil
	}

	if tag, owed := playerOwingReplacement(g); owed {
		owing := g.Players[tag]
		actions := make([]Action, 0, len(owing.Bench))
		for j, b := range owing.Bench {
			actions = append(actions, Action{Type: ActionPromote, BenchSlot: j,
				Description: fmt.Sprintf("Promote %s to Active", b.Card.Name)})
		}
		return actions
	}

	var actions []Action
	p := g.Players[g.ActiveTag]

	if g.Phase != state.PhaseMain && g.Phase != state.PhaseAttack {
		return actions
	}

	if g.Phase == state.PhaseMain {
		for i, c := range p.Hand {
			if !c.IsBasicPokemon() {
				continue
			}
			if p.Active == nil {
				actions = append(actions, Action{Type: ActionPlayPokemonActive, HandIndex: i,
					Description: fmt.Sprintf("Play %s as your Active Pokémon", c.Name)})
			}
			if p.HasBenchRoom() {
				actions = append(actions, Action{Type: ActionPlayPokemonBench, HandIndex: i,
					Description: fmt.Sprintf("Play %s to the Bench", c.Name)})
			}
		}

		for i, c := range p.Hand {
			if c.Kind != card.KindPokemon || c.Pokemon == nil || c.Pokemon.EvolvesFrom == "" {
				continue
			}
			if p.Active != nil && p.Active.Card.Name == c.Pokemon.EvolvesFrom &&
				p.Active.PlacedTurn != g.TurnNumber && !p.Active.EvolvedThisTurn {
				actions = append(actions, Action{Type: ActionEvolve, HandIndex: i, BenchSlot: -1,
					Description: fmt.Sprintf("Evolve %s into %s", p.Active.Card.Name, c.Name)})
			}
			for j, b := range p.Bench {
				if b.Card.Name == c.Pokemon.EvolvesFrom && b.PlacedTurn != g.TurnNumber && !b.EvolvedThisTurn {
					actions = append(actions, Action{Type: ActionEvolve, HandIndex: i, BenchSlot: j,
						Description: fmt.Sprintf("Evolve %s into %s", b.Card.Name, c.Name)})
				}
			}
		}

		if p.CanAttachEnergy() && !(g.IsFirstTurn && g.ActiveTag == state.PlayerA) {
			if p.Active != nil {
				actions = append(actions, Action{Type: ActionAttachEnergy, BenchSlot: -1,
					Description: fmt.Sprintf("Attach %s energy to %s", p.EnergyZoneReady, p.Active.Card.Name)})
			}
			for j, b := range p.Bench {
				actions = append(actions, Action{Type: ActionAttachEnergy, BenchSlot: j,
					Description: fmt.Sprintf("Attach %s energy to %s", p.EnergyZoneReady, b.Card.Name)})
			}
		}

		if p.Active != nil && p.Active.Status != card.Asleep && p.Active.Status != card.Paralyzed &&
			len(p.Active.AttachedEnergy) >= p.Active.Card.Pokemon.RetreatCost {
			for j, b := range p.Bench {
				actions = append(actions, Action{Type: ActionRetreat, BenchSlot: j,
					Description: fmt.Sprintf("Retreat %s, bringing in %s", p.Active.Card.Name, b.Card.Name)})
			}
		}

		for i, c := range p.Hand {
			if c.Trainer == nil {
				continue
			}
			if c.Trainer.Variant == card.VariantSupporter && p.SupporterPlayedThisTurn {
				continue
			}
			if _, ok := reg.Resolve(c.Name, c.Trainer.EffectText); !ok {
				continue
			}
			actions = append(actions, Action{Type: ActionPlayTrainer, HandIndex: i, BenchSlot: noTarget,
				Description: fmt.Sprintf("Play %s", c.Name)})
		}

		actions = append(actions, Action{Type: ActionPassTurn, Description: "End Main phase"})
	}

	if g.Phase == state.PhaseAttack {
		if !g.IsFirstTurn && p.Active != nil {
			for i, atk := range p.Active.Card.Pokemon.Attacks {
				if canPayCost(p.Active.AttachedEnergy, atk.Cost) {
					actions = append(actions, Action{Type: ActionAttack, AttackIndex: i,
						Description: fmt.Sprintf("Use %s", atk.Name)})
				}
			}
		}
		actions = append(actions, Action{Type: ActionPassTurn, Description: "End Attack phase without attacking"})
	}

	return actions
}

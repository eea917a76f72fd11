package registry

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/effect"
)

// CardRegistry maps a card's display name to a constructor. A curated set,
// not a full reprint of the real game's card pool; the trainer pipelines
// wired in this package use only some of the effect-DSL primitives.
var CardRegistry = map[string]func() *card.Card{
	"Bulbasaur": func() *card.Card {
		c, err := card.NewPokemonCard("PR-001", "Bulbasaur", "PR", card.PokemonData{
			HP: 70, Type: card.Grass, Stage: card.Basic, RetreatCost: 1,
			Attacks: []card.Attack{{
				Name: "Vine Whip", Cost: []card.EnergyType{card.Grass, card.Colorless}, Damage: 40,
			}},
		})
		must(err)
		return c
	},
	"Ivysaur": func() *card.Card {
		c, err := card.NewPokemonCard("PR-002", "Ivysaur", "PR", card.PokemonData{
			HP: 90, Type: card.Grass, Stage: card.Stage1, EvolvesFrom: "Bulbasaur", RetreatCost: 1,
			Attacks: []card.Attack{{
				Name: "Razor Leaf", Cost: []card.EnergyType{card.Grass, card.Colorless, card.Colorless}, Damage: 60,
			}},
		})
		must(err)
		return c
	},
	"Charmander": func() *card.Card {
		c, err := card.NewPokemonCard("PR-003", "Charmander", "PR", card.PokemonData{
			HP: 60, Type: card.Fire, Stage: card.Basic, RetreatCost: 1,
			Attacks: []card.Attack{{
				Name: "Ember", Cost: []card.EnergyType{card.Fire}, Damage: 20,
			}},
		})
		must(err)
		return c
	},
	"Charizard ex": func() *card.Card {
		c, err := card.NewPokemonCard("PR-004", "Charizard ex", "PR", card.PokemonData{
			HP: 180, Type: card.Fire, Stage: card.Stage2, EvolvesFrom: "Charmeleon", RetreatCost: 2,
			IsEX: true, HasWeakness: true, Weakness: card.Water,
			Attacks: []card.Attack{{
				Name: "Fire Blast", Cost: []card.EnergyType{card.Fire, card.Fire, card.Colorless, card.Colorless}, Damage: 150,
				Effects: []card.AttackEffect{{Kind: card.EffectDiscardOwnEnergy, Target: card.TargetAttacker}},
			}},
		})
		must(err)
		return c
	},
	"Squirtle": func() *card.Card {
		c, err := card.NewPokemonCard("PR-005", "Squirtle", "PR", card.PokemonData{
			HP: 60, Type: card.Water, Stage: card.Basic, RetreatCost: 1,
			Attacks: []card.Attack{{
				Name: "Water Gun", Cost: []card.EnergyType{card.Water}, Damage: 20,
			}},
		})
		must(err)
		return c
	},
	"Pikachu": func() *card.Card {
		c, err := card.NewPokemonCard("PR-006", "Pikachu", "PR", card.PokemonData{
			HP: 60, Type: card.Electric, Stage: card.Basic, RetreatCost: 1,
			Attacks: []card.Attack{{
				Name: "Thunder Shock", Cost: []card.EnergyType{card.Electric}, Damage: 20,
				Effects: []card.AttackEffect{{Kind: card.EffectApplyStatus, Target: card.TargetDefender, Status: card.Paralyzed}},
			}},
		})
		must(err)
		return c
	},
	"Mewtwo ex": func() *card.Card {
		c, err := card.NewPokemonCard("PR-007", "Mewtwo ex", "PR", card.PokemonData{
			HP: 150, Type: card.Psychic, Stage: card.Basic, RetreatCost: 2, IsEX: true,
			Attacks: []card.Attack{{
				Name: "Psyburn", Cost: []card.EnergyType{card.Psychic, card.Colorless}, Damage: 50,
			}},
		})
		must(err)
		return c
	},
	"Machop": func() *card.Card {
		c, err := card.NewPokemonCard("PR-008", "Machop", "PR", card.PokemonData{
			HP: 70, Type: card.Fighting, Stage: card.Basic, RetreatCost: 2,
			Attacks: []card.Attack{{
				Name: "Low Kick", Cost: []card.EnergyType{card.Fighting, card.Colorless}, Damage: 30,
			}},
		})
		must(err)
		return c
	},
	"Potion": func() *card.Card {
		c, err := card.NewTrainerCard("PR-101", "Potion", "PR", card.VariantItem,
			"Heal 20 damage from 1 of your Pokémon.")
		must(err)
		return c
	},
	"Poké Ball": func() *card.Card {
		c, err := card.NewTrainerCard("PR-102", "Poké Ball", "PR", card.VariantItem,
			"Search your deck for a Basic Pokémon, reveal it, and put it into your hand. Then, shuffle your deck.")
		must(err)
		return c
	},
	"X Speed": func() *card.Card {
		c, err := card.NewTrainerCard("PR-103", "X Speed", "PR", card.VariantItem,
			"During this turn, the Retreat Cost of your Active Pokémon is 1 less.")
		must(err)
		return c
	},
	"Professor's Research": func() *card.Card {
		c, err := card.NewTrainerCard("PR-201", "Professor's Research", "PR", card.VariantSupporter,
			"Draw 2 cards.")
		must(err)
		return c
	},
	"Sabrina": func() *card.Card {
		c, err := card.NewTrainerCard("PR-202", "Sabrina", "PR", card.VariantSupporter,
			"Switch out your opponent's Active Pokémon to the Bench. (Your opponent chooses the new Active Pokémon.)")
		must(err)
		return c
	},
	"Giant Cape": func() *card.Card {
		c, err := card.NewTrainerCard("PR-301", "Giant Cape", "PR", card.VariantTool,
			"The Pokémon this card is attached to gets +20 HP.")
		must(err)
		c.Trainer.HPBonus = 20
		return c
	},
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// LookupCard returns the named card from the default database, or nil if
// unregistered. It deliberately does not panic: an unregistered card name
// reaching the engine from a deck file is a data problem the engine
// reports as InvalidDeck, not a programming error.
func LookupCard(name string) *card.Card {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil
	}
	return ctor()
}

// BuildDefaultTrainerRegistry wires the curated trainer cards to their
// effect.Pipeline implementations.
func BuildDefaultTrainerRegistry() *TrainerRegistry {
	r := NewTrainerRegistry()

	r.RegisterByName("Potion", effect.Pipeline{
		effect.Condition(effect.RequireDamagedPokemon()),
		effect.Selection(effect.PlayerChoosesOwnPokemon()),
		effect.Action(effect.HealTargets(20)),
	})

	r.RegisterByName("Poké Ball", effect.Pipeline{
		effect.Action(effect.SearchDeckForBasicPokemon()),
	})

	r.RegisterByName("Professor's Research", effect.Pipeline{
		effect.Action(effect.DrawCards(2)),
	})

	r.RegisterByName("Sabrina", effect.Pipeline{
		effect.Condition(effect.RequireOpponentBenchPokemon()),
		effect.Selection(effect.OpponentChoosesBenched()),
		effect.Action(effect.SwitchActiveWithTarget()),
	})

	r.RegisterByName("Giant Cape", effect.Pipeline{
		effect.Selection(effect.PlayerChoosesOwnPokemon()),
		effect.Condition(effect.RequireToolFree()),
		effect.Action(effect.AttachToolToTarget()),
	})

	return r
}

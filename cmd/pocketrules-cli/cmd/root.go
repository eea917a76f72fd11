// Package cmd implements the pocketrules CLI, a local self-play and
// scripted-scenario front end for internal/engine, in favor of the
// MCP/Environment Adapter surface now that networked multiplayer is out
// of scope.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/registry"
)

var rootCmd = &cobra.Command{
	Use:   "pocketrules",
	Short: "Deterministic rules engine and simulator for a TCG Pocket-style card game",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("decks", "decks.yaml", "path to decks YAML file")
	flags.String("deck-a", "", "name of player A's deck (goes first)")
	flags.String("deck-b", "", "name of player B's deck")
	flags.Int64("seed", 1, "RNG seed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(legalCmd)
	rootCmd.AddCommand(replayCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func defaultRegistry() *registry.TrainerRegistry {
	return registry.BuildDefaultTrainerRegistry()
}

// resolvedDecks loads --decks and resolves --deck-a/--deck-b into concrete
// card lists and registered energy types.
func resolvedDecks(cmd *cobra.Command) (cardsA, cardsB []*card.Card, typesA, typesB []card.EnergyType, err error) {
	decksPath, err := cmd.Flags().GetString("decks")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nameA, err := cmd.Flags().GetString("deck-a")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nameB, err := cmd.Flags().GetString("deck-b")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	df, err := registry.ParseDeckFile(decksPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	deckA := df.DeckByName(nameA)
	if deckA == nil {
		return nil, nil, nil, nil, &registry.DeckValidationError{Reason: "unknown deck " + nameA}
	}
	deckB := df.DeckByName(nameB)
	if deckB == nil {
		return nil, nil, nil, nil, &registry.DeckValidationError{Reason: "unknown deck " + nameB}
	}

	cardsA, err = deckA.ResolveCards(registry.LookupCard)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cardsB, err = deckB.ResolveCards(registry.LookupCard)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	typesA, err = deckA.ResolveEnergyTypes()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	typesB, err = deckB.ResolveEnergyTypes()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := registry.ValidateDeck(cardsA, typesA); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := registry.ValidateDeck(cardsB, typesB); err != nil {
		return nil, nil, nil, nil, err
	}
	return cardsA, cardsB, typesA, typesB, nil
}

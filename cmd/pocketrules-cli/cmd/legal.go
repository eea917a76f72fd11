package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tcgpocket/pocketrules/internal/engine"
)

var legalCmd = &cobra.Command{
	Use:   "legal",
	Short: "Print the legal-action list for a freshly created game",
	RunE:  runLegal,
}

func runLegal(cmd *cobra.Command, args []string) error {
	cardsA, cardsB, typesA, typesB, err := resolvedDecks(cmd)
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}

	g, err := engine.CreateGame(seed, cardsA, cardsB, typesA, typesB)
	if err != nil {
		return err
	}

	reg := defaultRegistry()
	for i, a := range engine.LegalActions(g, reg) {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, a.Description)
	}
	return nil
}

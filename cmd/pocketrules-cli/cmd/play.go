package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tcgpocket/pocketrules/internal/engine"
	"github.com/tcgpocket/pocketrules/internal/log"
)

const maxAutoSteps = 2000

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Self-play a deterministic duel to completion, always taking the first legal action",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Int("max-steps", maxAutoSteps, "safety cap on the number of actions taken before giving up")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cardsA, cardsB, typesA, typesB, err := resolvedDecks(cmd)
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}
	maxSteps, err := cmd.Flags().GetInt("max-steps")
	if err != nil {
		return err
	}

	reg := defaultRegistry()
	logger := log.NewTextLogger(cmd.OutOrStdout())

	g, err := engine.CreateGame(seed, cardsA, cardsB, typesA, typesB)
	if err != nil {
		return err
	}

	for step := 0; step < maxSteps && !g.IsOver(); step++ {
		actions := engine.LegalActions(g, reg)
		if len(actions) == 0 {
			return fmt.Errorf("no legal actions available at turn %d, phase %s — stuck", g.TurnNumber, g.Phase)
		}
		g, err = engine.ExecuteAction(g, reg, actions[0], logger)
		if err != nil {
			return fmt.Errorf("executing %s: %w", actions[0].Description, err)
		}
	}

	if !g.IsOver() {
		fmt.Fprintf(cmd.OutOrStdout(), "reached max-steps (%d) without a winner\n", maxSteps)
	}
	return nil
}

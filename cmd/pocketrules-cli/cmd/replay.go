package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tcgpocket/pocketrules/internal/engine"
	"github.com/tcgpocket/pocketrules/internal/log"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Apply a fixed sequence of legal-action indices to a freshly created game",
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().String("actions", "", "comma-separated legal-action indices, applied in order")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cardsA, cardsB, typesA, typesB, err := resolvedDecks(cmd)
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}
	actionsFlag, err := cmd.Flags().GetString("actions")
	if err != nil {
		return err
	}

	indices, err := parseIndices(actionsFlag)
	if err != nil {
		return err
	}

	reg := defaultRegistry()
	logger := log.NewTextLogger(cmd.OutOrStdout())

	g, err := engine.CreateGame(seed, cardsA, cardsB, typesA, typesB)
	if err != nil {
		return err
	}

	for step, idx := range indices {
		actions := engine.LegalActions(g, reg)
		if idx < 0 || idx >= len(actions) {
			return fmt.Errorf("step %d: index %d out of range (%d legal actions)", step, idx, len(actions))
		}
		g, err = engine.ExecuteAction(g, reg, actions[idx], logger)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", step, actions[idx].Description, err)
		}
	}

	if g.IsOver() {
		fmt.Fprintln(cmd.OutOrStdout(), "game over")
	}
	return nil
}

func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid action index %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}

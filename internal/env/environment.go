package env

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/engine"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/registry"
	"github.com/tcgpocket/pocketrules/internal/state"
)

const (
	winReward  = 1.0
	lossReward = -1.0
	stepShape  = 0.0 // no shaping beyond win/loss by default; see StepResult.Reward doc
)

// Environment wraps a single duel's GameState behind the reset/step
// contract. It holds no additional hidden state of its own beyond
// the current GameState and the shared trainer registry.
type Environment struct {
	state    state.GameState
	registry *registry.TrainerRegistry
	logger   log.EventLogger
}

// New wraps an already-constructed GameState (e.g. from engine.CreateGame).
func New(g state.GameState, reg *registry.TrainerRegistry, logger log.EventLogger) *Environment {
	return &Environment{state: g, registry: reg, logger: logger}
}

// Reset creates a fresh duel from the two decks and reseeds the RNG,
// returning the initial observation.
func (e *Environment) Reset(seed int64, deckA, deckB []*card.Card, energyTypesA, energyTypesB []card.EnergyType) (Observation, error) {
	g, err := engine.CreateGame(seed, deckA, deckB, energyTypesA, energyTypesB)
	if err != nil {
		return Observation{}, err
	}
	e.state = g
	return Observe(e.state), nil
}

// LegalActions returns the legal-action list for the current state.
func (e *Environment) LegalActions() []engine.Action {
	return engine.LegalActions(e.state, e.registry)
}

// StepResult bundles the post-step observation with RL-style signals.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool // always false: this engine has no step-count cap of its own
	Info        map[string]any
}

// Step applies the action at actionIndex (as indexed into LegalActions)
// and returns the new observation plus reward. Reward is 0 on every
// non-terminal step and +1/-1 from the player who was active when Step
// was called, on a win or loss. Intermediate shaping is deliberately left
// at 0 so callers that want denser shaping compose it from Observation
// themselves rather than have this adapter bake in a reward design: the
// rules engine makes no doctrine judgment about which sub-goals (board
// presence, energy tempo) deserve partial credit.
func (e *Environment) Step(actionIndex int) (StepResult, error) {
	actions := e.LegalActions()
	if actionIndex < 0 || actionIndex >= len(actions) {
		return StepResult{}, &engineIndexError{actionIndex, len(actions)}
	}
	actingBeforeStep := e.state.ActiveTag

	next, err := engine.ExecuteAction(e.state, e.registry, actions[actionIndex], e.logger)
	if err != nil {
		return StepResult{}, err
	}
	e.state = next

	reward := stepShape
	if e.state.IsOver() {
		if *e.state.Winner == actingBeforeStep {
			reward = winReward
		} else {
			reward = lossReward
		}
	}

	return StepResult{
		Observation: Observe(e.state),
		Reward:      reward,
		Terminated:  e.state.IsOver(),
		Truncated:   false,
		Info:        map[string]any{},
	}, nil
}

// State exposes the raw GameState for callers (tests, the CLI) that need
// more than the Observation projection.
func (e *Environment) State() state.GameState { return e.state }

type engineIndexError struct {
	index, n int
}

func (e *engineIndexError) Error() string {
	return "action index out of range for current legal-action list"
}

// Package env implements the Environment Adapter: a reset/step
// contract wrapping internal/engine for RL-style callers, with a
// fixed-shape Observation and a terminal-only reward (+1 for a win, -1
// for a loss, 0 otherwise).
package env

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/state"
)

// PokemonView is the observable projection of one Pokémon in play — no
// hidden information (no Go internals leak) beyond what a real player
// could see.
type PokemonView struct {
	Name           string
	HP             int
	MaxHP          int
	Type           string
	Status         string
	AttachedEnergy []string
	Tool           string // empty if none
}

// PlayerView is the observable projection of one player's board. Deck and
// hand contents beyond the acting player's own hand are hidden: an
// opponent's hand is reported only as a count, matching real TCG Pocket
// information asymmetry.
type PlayerView struct {
	Active          *PokemonView
	Bench           []PokemonView
	HandSize        int
	Hand            []string // card names; empty for the non-viewing player
	DeckSize        int
	DiscardSize     int
	Points          int
	RegisteredTypes []string
	EnergyZoneReady string
	EnergyZoneKnown bool
}

// Observation is the fixed-shape state snapshot returned by Reset/Step.
// Fields are zero-filled (not omitted) when an entity is absent, so a
// consumer building a fixed-size tensor never has to special-case a
// missing bench slot.
type Observation struct {
	ActingPlayer int
	Turn         int
	Phase        string
	You          PlayerView
	Opponent     PlayerView
	Terminated   bool
	Winner       int // -1 if not terminated or tied
	WinReason    string
}

func viewPokemon(pk *state.PokemonInPlay) *PokemonView {
	if pk == nil || pk.Card == nil || pk.Card.Pokemon == nil {
		return nil
	}
	energies := make([]string, len(pk.AttachedEnergy))
	for i, e := range pk.AttachedEnergy {
		energies[i] = e.String()
	}
	tool := ""
	if pk.Tool != nil {
		tool = pk.Tool.Name
	}
	return &PokemonView{
		Name:           pk.Card.Name,
		HP:             pk.RemainingHP(),
		MaxHP:          pk.MaxHP(),
		Type:           pk.Card.Pokemon.Type.String(),
		Status:         pk.Status.String(),
		AttachedEnergy: energies,
		Tool:           tool,
	}
}

func viewBench(bench []state.PokemonInPlay) []PokemonView {
	n := state.MaxBenchSize
	if len(bench) > n {
		n = len(bench)
	}
	out := make([]PokemonView, n)
	for i := range bench {
		v := viewPokemon(&bench[i])
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func viewPlayer(p state.PlayerState, revealHand bool) PlayerView {
	registered := make([]string, len(p.RegisteredTypes))
	for i, t := range p.RegisteredTypes {
		registered[i] = t.String()
	}
	var hand []string
	if revealHand {
		hand = make([]string, len(p.Hand))
		for i, c := range p.Hand {
			hand[i] = c.Name
		}
	}
	active := viewPokemon(p.Active)
	if active == nil {
		active = &PokemonView{}
	}
	return PlayerView{
		Active:          active,
		Bench:           viewBench(p.Bench),
		HandSize:        len(p.Hand),
		Hand:            hand,
		DeckSize:        len(p.Deck),
		DiscardSize:     len(p.Discard),
		Points:          p.Points,
		RegisteredTypes: registered,
		EnergyZoneReady: p.EnergyZoneReady.String(),
		EnergyZoneKnown: p.EnergyZoneHasOne,
	}
}

// Observe projects g from the point of view of g's active player (the
// only player who gets to act next, hence the only one whose hand is
// revealed).
func Observe(g state.GameState) Observation {
	you := viewPlayer(g.Players[g.ActiveTag], true)
	opp := viewPlayer(g.Players[g.ActiveTag.Opponent()], false)
	winner := -1
	reason := ""
	if g.Winner != nil {
		winner = int(*g.Winner)
		reason = g.WinReason
	}
	return Observation{
		ActingPlayer: int(g.ActiveTag),
		Turn:         g.TurnNumber,
		Phase:        g.Phase.String(),
		You:          you,
		Opponent:     opp,
		Terminated:   g.IsOver(),
		Winner:       winner,
		WinReason:    reason,
	}
}

// PreviewEnergyDistribution exposes PlayerState.PreviewEnergyDistribution
// for the acting player without rolling the RNG.
func PreviewEnergyDistribution(g state.GameState) map[card.EnergyType]float64 {
	return g.Players[g.ActiveTag].PreviewEnergyDistribution()
}

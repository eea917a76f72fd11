package engine

import (
	"github.com/tcgpocket/pocketrules/internal/card"
	"github.com/tcgpocket/pocketrules/internal/rng"
	"github.com/tcgpocket/pocketrules/internal/state"
)

const initialHandSize = 5

// CreateGame builds a fresh GameState from two already-validated decks.
// Both decks are shuffled from the given seed, five cards are
// drawn to each hand, and player A (index 0) is made active for an
// IsFirstTurn turn — a first turn in which neither player may attack and
// the active player may not attach energy. Returns InvalidDeck if either
// resolved deck isn't exactly 20 cards — callers are expected to have
// already run registry.ValidateDeck, but CreateGame re-checks defensively
// since it is the one true construction point.
func CreateGame(seed int64, deckA, deckB []*card.Card, energyTypesA, energyTypesB []card.EnergyType) (state.GameState, error) {
	for i, deck := range [][]*card.Card{deckA, deckB} {
		if len(deck) != 20 {
			return state.GameState{}, newError(InvalidDeck, "player %d deck must contain exactly 20 cards, got %d", i, len(deck))
		}
	}

	r := rng.NewSource(seed)

	playerA, r := newPlayerState(deckA, energyTypesA, r)
	playerB, r := newPlayerState(deckB, energyTypesB, r)

	g := state.GameState{
		Players:     [2]state.PlayerState{playerA, playerB},
		ActiveTag:   state.PlayerA,
		Phase:       state.PhaseDraw,
		TurnNumber:  1,
		IsFirstTurn: true,
		RNG:         r,
	}
	return cascadeAutomaticPhases(g, nil)
}

func newPlayerState(deck []*card.Card, energyTypes []card.EnergyType, r rng.Source) (state.PlayerState, rng.Source) {
	perm, r := r.Shuffle(len(deck))
	shuffled := make([]*card.Card, len(deck))
	for i, j := range perm {
		shuffled[i] = deck[j]
	}
	p := state.PlayerState{
		Deck:            shuffled,
		RegisteredTypes: append([]card.EnergyType(nil), energyTypes...),
	}
	for i := 0; i < initialHandSize && len(p.Deck) > 0; i++ {
		p = p.WithDrawnCard()
	}
	return p, r
}

package state

import "github.com/tcgpocket/pocketrules/internal/card"

// MaxBenchSize is the number of bench slots a player has.
const MaxBenchSize = 3

// MaxHandSize is the hand-size cap enforced in the End phase.
const MaxHandSize = 10

// PointsToWin is the number of prize points needed to win by knockouts.
const PointsToWin = 3

// PlayerState is one player's half of the board: deck, hand, discard,
// active/bench Pokémon, points, and per-turn flags. All fields are values
// or slices treated as copy-on-write — no method here mutates the receiver.
type PlayerState struct {
	Deck    []*card.Card
	Hand    []*card.Card
	Discard []*card.Card

	Active *PokemonInPlay // nil only in the gap between knockout and forced replacement
	Bench  []PokemonInPlay

	Points int

	RegisteredTypes []card.EnergyType // 1-3 energy types this deck generates

	EnergyZoneReady  card.EnergyType // the energy available to attach this turn
	EnergyZoneHasOne bool            // false before the first generation and once the zone energy is spent

	EnergyAttachedThisTurn  bool
	SupporterPlayedThisTurn bool
}

// BenchedCount returns how many non-empty bench slots are occupied.
func (p PlayerState) BenchedCount() int {
	return len(p.Bench)
}

// HasBenchRoom reports whether another Pokémon can be placed on the bench.
func (p PlayerState) HasBenchRoom() bool {
	return len(p.Bench) < MaxBenchSize
}

// AllPokemon returns the active Pokémon (if any) followed by the bench, in
// a stable order.
func (p PlayerState) AllPokemon() []PokemonInPlay {
	all := make([]PokemonInPlay, 0, 1+len(p.Bench))
	if p.Active != nil {
		all = append(all, *p.Active)
	}
	all = append(all, p.Bench...)
	return all
}

// WithDrawnCard returns a copy with the top card moved from Deck to Hand.
// The caller is responsible for checking Deck is non-empty (DeckEmpty is an
// engine-level concern, not a state-package one).
func (p PlayerState) WithDrawnCard() PlayerState {
	np := p
	np.Deck = p.Deck[1:]
	np.Hand = append(append([]*card.Card(nil), p.Hand...), p.Deck[0])
	return np
}

// WithCardRemovedFromHand returns a copy with the card at index i removed
// from Hand.
func (p PlayerState) WithCardRemovedFromHand(i int) PlayerState {
	np := p
	hand := make([]*card.Card, 0, len(p.Hand)-1)
	hand = append(hand, p.Hand[:i]...)
	hand = append(hand, p.Hand[i+1:]...)
	np.Hand = hand
	return np
}

// WithCardAddedToHand returns a copy with c appended to Hand.
func (p PlayerState) WithCardAddedToHand(c *card.Card) PlayerState {
	np := p
	np.Hand = append(append([]*card.Card(nil), p.Hand...), c)
	return np
}

// WithCardDiscarded returns a copy with c appended to Discard.
func (p PlayerState) WithCardDiscarded(c *card.Card) PlayerState {
	np := p
	np.Discard = append(append([]*card.Card(nil), p.Discard...), c)
	return np
}

// WithActive returns a copy with a new active Pokémon.
func (p PlayerState) WithActive(pk *PokemonInPlay) PlayerState {
	np := p
	np.Active = pk
	return np
}

// WithBenchAppended returns a copy with pk placed in the next open bench
// slot. Caller must check HasBenchRoom first.
func (p PlayerState) WithBenchAppended(pk PokemonInPlay) PlayerState {
	np := p
	np.Bench = append(append([]PokemonInPlay(nil), p.Bench...), pk)
	return np
}

// WithBenchAt returns a copy with bench slot i replaced by pk.
func (p PlayerState) WithBenchAt(i int, pk PokemonInPlay) PlayerState {
	np := p
	bench := append([]PokemonInPlay(nil), p.Bench...)
	bench[i] = pk
	np.Bench = bench
	return np
}

// WithBenchRemoved returns a copy with bench slot i removed (slots above it
// shift down — bench has no fixed positions in this engine).
func (p PlayerState) WithBenchRemoved(i int) PlayerState {
	np := p
	bench := make([]PokemonInPlay, 0, len(p.Bench)-1)
	bench = append(bench, p.Bench[:i]...)
	bench = append(bench, p.Bench[i+1:]...)
	np.Bench = bench
	return np
}

// WithPoints returns a copy with Points increased by delta.
func (p PlayerState) WithPoints(delta int) PlayerState {
	np := p
	np.Points += delta
	return np
}

// WithEnergyZone returns a copy with a freshly generated energy ready to
// attach.
func (p PlayerState) WithEnergyZone(t card.EnergyType) PlayerState {
	np := p
	np.EnergyZoneReady = t
	np.EnergyZoneHasOne = true
	return np
}

// WithEnergyZoneConsumed returns a copy with the ready energy cleared (it
// was attached this turn).
func (p PlayerState) WithEnergyZoneConsumed() PlayerState {
	np := p
	np.EnergyZoneHasOne = false
	np.EnergyAttachedThisTurn = true
	return np
}

// WithTurnFlagsReset returns a copy with per-turn flags cleared, and each
// bench/active Pokémon's EvolvedThisTurn flag cleared — called when this
// player becomes active again (on AdvancePhase wraparound).
func (p PlayerState) WithTurnFlagsReset() PlayerState {
	np := p
	np.EnergyAttachedThisTurn = false
	np.SupporterPlayedThisTurn = false
	if np.Active != nil {
		a := *np.Active
		a.EvolvedThisTurn = false
		np.Active = &a
	}
	bench := append([]PokemonInPlay(nil), np.Bench...)
	for i := range bench {
		bench[i].EvolvedThisTurn = false
	}
	np.Bench = bench
	return np
}

// CanAttachEnergy reports whether this player may attach their ready
// energy this turn (one attach per turn, and only if the zone holds one).
func (p PlayerState) CanAttachEnergy() bool {
	return p.EnergyZoneHasOne && !p.EnergyAttachedThisTurn
}

// PreviewEnergyDistribution returns the uniform distribution over this
// player's registered energy types — the set the next EnergyZoneReady
// value will be drawn from. It does not consume randomness: "previewing"
// a draw by rolling the RNG would desync replay determinism, so this is
// informational only.
func (p PlayerState) PreviewEnergyDistribution() map[card.EnergyType]float64 {
	dist := make(map[card.EnergyType]float64, len(p.RegisteredTypes))
	if len(p.RegisteredTypes) == 0 {
		return dist
	}
	share := 1.0 / float64(len(p.RegisteredTypes))
	for _, t := range p.RegisteredTypes {
		dist[t] += share
	}
	return dist
}

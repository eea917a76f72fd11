// Package state defines the immutable game-state container described in
// PlayerState, the Pokémon-in-play overlay, and GameState itself.
// Every value here is copy-on-write — methods return a new value rather
// than mutating the receiver — so a search driver can branch from one
// GameState into many without aliasing concerns.
package state

import (
	"github.com/tcgpocket/pocketrules/internal/card"
)

// Phase is one of the five turn phases, cycled by GameState.AdvancePhase in
// the fixed order Draw → Main → Attack → Checkup → End.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseMain
	PhaseAttack
	PhaseCheckup
	PhaseEnd
)

var phaseOrder = [...]Phase{PhaseDraw, PhaseMain, PhaseAttack, PhaseCheckup, PhaseEnd}

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw"
	case PhaseMain:
		return "Main"
	case PhaseAttack:
		return "Attack"
	case PhaseCheckup:
		return "Checkup"
	case PhaseEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// PlayerTag identifies one of the two players by seat.
type PlayerTag int

const (
	PlayerA PlayerTag = iota
	PlayerB
)

func (t PlayerTag) Opponent() PlayerTag {
	if t == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// PokemonInPlay is the runtime overlay for one Pokémon on the board: the
// static Card plus every mutable fact about its current game instance.
type PokemonInPlay struct {
	Card             *card.Card
	Damage           int
	AttachedEnergy   []card.EnergyType // ordered multiset, attach order preserved
	Tool             *card.Card        // nil if no tool attached
	Status           card.StatusCondition
	PlacedTurn       int  // turn_number this Pokémon entered play (evolving keeps the original value)
	EvolvedThisTurn  bool // true the turn it evolved; blocks evolving again that turn
	DamageBonusTurn  int  // turn a DamageBonusThisTurn bonus was granted; the bonus applies only on that turn; 0 = none active
	DamageBonusValue int
}

// MaxHP returns the Pokémon's HP ceiling: its printed HP plus any flat
// bonus granted by an attached Tool (e.g. Giant Cape's +20).
func (p PokemonInPlay) MaxHP() int {
	if p.Card == nil || p.Card.Pokemon == nil {
		return 0
	}
	hp := p.Card.Pokemon.HP
	if p.Tool != nil && p.Tool.Trainer != nil {
		hp += p.Tool.Trainer.HPBonus
	}
	return hp
}

// RemainingHP returns the Pokémon's current hit points.
func (p PokemonInPlay) RemainingHP() int {
	if p.Card == nil || p.Card.Pokemon == nil {
		return 0
	}
	hp := p.MaxHP() - p.Damage
	if hp < 0 {
		return 0
	}
	return hp
}

// IsKnockedOut reports whether accumulated damage has reduced this
// Pokémon's HP to zero or below.
func (p PokemonInPlay) IsKnockedOut() bool {
	return p.Card != nil && p.Card.Pokemon != nil && p.Damage >= p.MaxHP()
}

// WithDamage returns a copy with damage added (never below zero).
func (p PokemonInPlay) WithDamage(delta int) PokemonInPlay {
	np := p
	np.Damage += delta
	if np.Damage < 0 {
		np.Damage = 0
	}
	return np
}

// WithStatus returns a copy carrying the given status condition.
func (p PokemonInPlay) WithStatus(s card.StatusCondition) PokemonInPlay {
	np := p
	np.Status = s
	return np
}

// WithAttachedEnergy returns a copy with one more energy of the given type
// attached, in attach order.
func (p PokemonInPlay) WithAttachedEnergy(e card.EnergyType) PokemonInPlay {
	np := p
	np.AttachedEnergy = append(append([]card.EnergyType(nil), p.AttachedEnergy...), e)
	return np
}

// EnergyCount returns how many energy of a given type (or, for
// card.Colorless, of any type) are attached.
func (p PokemonInPlay) EnergyCount(t card.EnergyType) int {
	n := 0
	for _, e := range p.AttachedEnergy {
		if t == card.Colorless || e == t {
			n++
		}
	}
	return n
}

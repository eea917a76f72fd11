package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tcgpocket/pocketrules/internal/card"
)

const (
	deckSize        = 20
	maxCopiesByName = 2
)

// CardEntry is one line of a deck list: a card name and how many copies.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// DeckEntry is one named, playable deck: its card list plus the 1-3
// energy types its energy zone may generate.
type DeckEntry struct {
	Name        string      `yaml:"name"`
	Cards       []CardEntry `yaml:"cards"`
	EnergyTypes []string    `yaml:"energy_types"`
}

// DeckFile is the top-level YAML document: a named collection of decks,
// each with a {name,count} card tally and a registered-energy-types field.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// ParseDeckFile reads and unmarshals a deck file from disk.
func ParseDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %w", err)
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing deck file: %w", err)
	}
	return &df, nil
}

// DeckByName returns the named deck entry, or nil if absent.
func (df *DeckFile) DeckByName(name string) *DeckEntry {
	for i := range df.Decks {
		if df.Decks[i].Name == name {
			return &df.Decks[i]
		}
	}
	return nil
}

var energyTypeByName = map[string]card.EnergyType{
	"Grass": card.Grass, "Fire": card.Fire, "Water": card.Water,
	"Electric": card.Electric, "Psychic": card.Psychic, "Fighting": card.Fighting,
	"Darkness": card.Darkness, "Metal": card.Metal, "Dragon": card.Dragon,
	"Fairy": card.Fairy, "Colorless": card.Colorless,
}

// DeckValidationError reports the first rule a deck list violates,
// returning the first violated rule rather than collecting all of them.
type DeckValidationError struct {
	Reason string
}

func (e *DeckValidationError) Error() string {
	return fmt.Sprintf("invalid deck: %s", e.Reason)
}

// ResolveCards expands a DeckEntry's {name,count} tallies into concrete
// card.Card pointers (repeated per count) by looking each name up in the
// card database.
func (d *DeckEntry) ResolveCards(lookup func(name string) *card.Card) ([]*card.Card, error) {
	var out []*card.Card
	for _, entry := range d.Cards {
		c := lookup(entry.Name)
		if c == nil {
			return nil, &DeckValidationError{Reason: fmt.Sprintf("unknown card %q", entry.Name)}
		}
		for i := 0; i < entry.Count; i++ {
			out = append(out, c)
		}
	}
	return out, nil
}

// ResolveEnergyTypes converts the deck's energy_types strings to
// card.EnergyType values.
func (d *DeckEntry) ResolveEnergyTypes() ([]card.EnergyType, error) {
	out := make([]card.EnergyType, 0, len(d.EnergyTypes))
	for _, name := range d.EnergyTypes {
		t, ok := energyTypeByName[name]
		if !ok || t == card.Colorless {
			return nil, &DeckValidationError{Reason: fmt.Sprintf("unrecognized registered energy type %q", name)}
		}
		out = append(out, t)
	}
	return out, nil
}

// ValidateDeck checks every deck-construction rule against a resolved card
// list and energy-type list, returning the first violation: exactly 20
// cards, at most 2 copies of any one name, at least 1 Basic Pokémon, and
// 1-3 registered energy types.
func ValidateDeck(cards []*card.Card, energyTypes []card.EnergyType) error {
	if len(cards) != deckSize {
		return &DeckValidationError{Reason: fmt.Sprintf("deck must contain exactly %d cards, got %d", deckSize, len(cards))}
	}
	counts := make(map[string]int, len(cards))
	hasBasic := false
	for _, c := range cards {
		counts[c.Name]++
		if c.IsBasicPokemon() {
			hasBasic = true
		}
	}
	for name, n := range counts {
		if n > maxCopiesByName {
			return &DeckValidationError{Reason: fmt.Sprintf("more than %d copies of %q", maxCopiesByName, name)}
		}
	}
	if !hasBasic {
		return &DeckValidationError{Reason: "deck must contain at least one Basic Pokémon"}
	}
	if len(energyTypes) < 1 || len(energyTypes) > 3 {
		return &DeckValidationError{Reason: "deck must register 1 to 3 energy types"}
	}
	return nil
}

// Package registry holds the curated card database, the Trainer Registry
// that maps a trainer card to its compiled effect.Pipeline, and the
// YAML deck-file loader.
package registry

import "github.com/tcgpocket/pocketrules/internal/effect"

// TrainerRegistry resolves a trainer card to the effect.Pipeline that
// implements it. Lookup is by display name first; if no name entry
// exists, it falls back to an exact match on the card's normalized
// effect text. A card that matches neither key surfaces UnsupportedEffect
// to the engine without mutating state.
type TrainerRegistry struct {
	byName *orderedLookup
	byText *orderedLookup
}

type orderedLookup struct {
	entries map[string]effect.Pipeline
}

func newOrderedLookup() *orderedLookup {
	return &orderedLookup{entries: make(map[string]effect.Pipeline)}
}

func (l *orderedLookup) set(key string, p effect.Pipeline) { l.entries[key] = p }
func (l *orderedLookup) get(key string) (effect.Pipeline, bool) {
	p, ok := l.entries[key]
	return p, ok
}

// NewTrainerRegistry builds an empty registry.
func NewTrainerRegistry() *TrainerRegistry {
	return &TrainerRegistry{byName: newOrderedLookup(), byText: newOrderedLookup()}
}

// RegisterByName binds a pipeline to an exact card display name. Most
// trainer cards are registered this way: the name alone identifies the
// unique effect.
func (r *TrainerRegistry) RegisterByName(name string, p effect.Pipeline) {
	r.byName.set(name, p)
}

// RegisterByText binds a pipeline to a normalized effect-text string, for
// cards (typically reprints or generic-effect variants) that share wording
// but not a name entry.
func (r *TrainerRegistry) RegisterByText(text string, p effect.Pipeline) {
	r.byText.set(text, p)
}

// Resolve looks up name first, then effectText. ok is false if neither key
// matches — the caller (internal/engine) must surface UnsupportedEffect
// rather than guess.
func (r *TrainerRegistry) Resolve(name, effectText string) (effect.Pipeline, bool) {
	if p, ok := r.byName.get(name); ok {
		return p, true
	}
	if p, ok := r.byText.get(effectText); ok {
		return p, true
	}
	return nil, false
}

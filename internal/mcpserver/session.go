// Package mcpserver exposes the Environment Adapter (internal/env) over
// the Model Context Protocol via github.com/mark3labs/mcp-go: a
// reset_game/legal_actions/step/observe tool surface rather than an
// interactive duel controller, since this engine has no human-in-the-loop
// decision points to proxy — every choice is already a field on the
// Action a caller picked from legal_actions.
package mcpserver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tcgpocket/pocketrules/internal/env"
	"github.com/tcgpocket/pocketrules/internal/registry"
)

// sessionStore holds one env.Environment per session id, keyed by
// google/uuid — no shared mutable state between sessions.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*env.Environment
	registry *registry.TrainerRegistry
	decks    *registry.DeckFile
}

func newSessionStore(decks *registry.DeckFile) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*env.Environment),
		registry: registry.BuildDefaultTrainerRegistry(),
		decks:    decks,
	}
}

// put registers e under a freshly generated session id and returns it.
func (s *sessionStore) put(e *env.Environment) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sessions[id] = e
	return id
}

func (s *sessionStore) get(id string) (*env.Environment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	return e, ok
}

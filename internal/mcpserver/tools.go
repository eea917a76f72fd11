package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tcgpocket/pocketrules/internal/env"
	"github.com/tcgpocket/pocketrules/internal/log"
	"github.com/tcgpocket/pocketrules/internal/registry"
	"github.com/tcgpocket/pocketrules/internal/state"
)

var store *sessionStore

// RegisterTools adds the four Environment Adapter tools to the MCP
// server, backed by a deck file loaded from decksPath.
func RegisterTools(s *server.MCPServer, decksPath string) error {
	decks, err := registry.ParseDeckFile(decksPath)
	if err != nil {
		return fmt.Errorf("loading deck file: %w", err)
	}
	store = newSessionStore(decks)

	s.AddTool(resetGameTool(), handleResetGame)
	s.AddTool(legalActionsTool(), handleLegalActions)
	s.AddTool(stepTool(), handleStep)
	s.AddTool(observeTool(), handleObserve)
	return nil
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Start a new duel from two named decks in the loaded deck file. Returns a session_id and the initial observation."),
		mcp.WithString("deck_a", mcp.Required(), mcp.Description("Name of player A's deck (goes first)")),
		mcp.WithString("deck_b", mcp.Required(), mcp.Description("Name of player B's deck")),
		mcp.WithNumber("seed", mcp.Description("RNG seed; defaults to 1 if omitted")),
	)
}

func legalActionsTool() mcp.Tool {
	return mcp.NewTool("legal_actions",
		mcp.WithDescription("List the legal actions for the acting player in an existing session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by reset_game")),
	)
}

func stepTool() mcp.Tool {
	return mcp.NewTool("step",
		mcp.WithDescription("Apply the action at the given index (from legal_actions) and return the new observation, reward, and termination status."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by reset_game")),
		mcp.WithNumber("action_index", mcp.Required(), mcp.Description("Index into the legal_actions list")),
	)
}

func observeTool() mcp.Tool {
	return mcp.NewTool("observe",
		mcp.WithDescription("Return the current observation without mutating state — useful to resynchronize after an out-of-band error."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by reset_game")),
	)
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to encode response: %v", err)
	}
	return mcp.NewToolResultText(string(b))
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckAName := request.GetString("deck_a", "")
	deckBName := request.GetString("deck_b", "")
	seed := int64(request.GetInt("seed", 1))

	deckA := store.decks.DeckByName(deckAName)
	deckB := store.decks.DeckByName(deckBName)
	if deckA == nil {
		return mcp.NewToolResultErrorf("unknown deck %q", deckAName), nil
	}
	if deckB == nil {
		return mcp.NewToolResultErrorf("unknown deck %q", deckBName), nil
	}

	cardsA, err := deckA.ResolveCards(registry.LookupCard)
	if err != nil {
		return mcp.NewToolResultErrorf("resolving deck_a: %v", err), nil
	}
	cardsB, err := deckB.ResolveCards(registry.LookupCard)
	if err != nil {
		return mcp.NewToolResultErrorf("resolving deck_b: %v", err), nil
	}
	typesA, err := deckA.ResolveEnergyTypes()
	if err != nil {
		return mcp.NewToolResultErrorf("resolving deck_a energy types: %v", err), nil
	}
	typesB, err := deckB.ResolveEnergyTypes()
	if err != nil {
		return mcp.NewToolResultErrorf("resolving deck_b energy types: %v", err), nil
	}
	if err := registry.ValidateDeck(cardsA, typesA); err != nil {
		return mcp.NewToolResultErrorf("deck_a invalid: %v", err), nil
	}
	if err := registry.ValidateDeck(cardsB, typesB); err != nil {
		return mcp.NewToolResultErrorf("deck_b invalid: %v", err), nil
	}

	e := env.New(state.GameState{}, store.registry, log.NewMemoryLogger())
	obs, err := e.Reset(seed, cardsA, cardsB, typesA, typesB)
	if err != nil {
		return mcp.NewToolResultErrorf("starting game: %v", err), nil
	}

	id := store.put(e)
	return jsonResult(map[string]any{"session_id": id, "observation": obs}), nil
}

func handleLegalActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	e, ok := store.get(id)
	if !ok {
		return mcp.NewToolResultErrorf("unknown session_id %q", id), nil
	}
	actions := e.LegalActions()
	descriptions := make([]string, len(actions))
	for i, a := range actions {
		descriptions[i] = a.Description
	}
	return jsonResult(map[string]any{"actions": descriptions}), nil
}

func handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	e, ok := store.get(id)
	if !ok {
		return mcp.NewToolResultErrorf("unknown session_id %q", id), nil
	}
	index := request.GetInt("action_index", -1)
	result, err := e.Step(index)
	if err != nil {
		return mcp.NewToolResultErrorf("step failed: %v", err), nil
	}
	return jsonResult(result), nil
}

func handleObserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	e, ok := store.get(id)
	if !ok {
		return mcp.NewToolResultErrorf("unknown session_id %q", id), nil
	}
	return jsonResult(env.Observe(e.State())), nil
}

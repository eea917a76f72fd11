package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tcgpocket/pocketrules/internal/mcpserver"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	flag.Parse()

	s := server.NewMCPServer("pocketrules", "1.0.0")
	if err := mcpserver.RegisterTools(s, *decks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	dfmcp "github.com/duelverse/duelfield/internal/mcp"
)

func main() {
	cards := flag.String("cards", "cards.yaml", "path to card library YAML file")
	deck := flag.String("deck", "deck.yaml", "path to deck list YAML file")
	flag.Parse()

	dfmcp.SetCardsFile(*cards)
	dfmcp.SetDeckFile(*deck)

	s := server.NewMCPServer("duelfield", "1.0.0")
	dfmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

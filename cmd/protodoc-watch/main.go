// Package main implements protodoc-watch, a live terminal preview of a
// protocol YAML file. The preview re-renders whenever the file changes.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: protodoc-watch <protocol.yaml>")
		os.Exit(2)
	}

	p := tea.NewProgram(newModel(os.Args[1]), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running preview: %v\n", err)
		os.Exit(1)
	}
}

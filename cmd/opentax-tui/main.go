package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/opentax/internal/calculation"
	"github.com/rgehrsitz/opentax/internal/config"
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/tui"
)

func main() {
	// An optional input file prefills the form
	var initial *domain.TaxInput
	if len(os.Args) > 1 {
		in, err := config.NewInputParser().LoadInput(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		initial = in
	}

	engine, err := calculation.NewDefaultTaxEngine()
	if err != nil {
		fmt.Printf("Error loading tax rules: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(engine, initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

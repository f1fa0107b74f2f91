package tui

import "github.com/rgehrsitz/opentax/internal/domain"

// Scene represents the screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Input"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// CalculationCompleteMsg carries a finished summary
type CalculationCompleteMsg struct {
	Summary domain.TaxSummary
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

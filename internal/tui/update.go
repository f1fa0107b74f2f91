package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		summary := msg.Summary
		m.summary = &summary
		m.err = nil
		m.currentScene = SceneResults
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.currentScene == SceneResults {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.currentScene = SceneForm
			cmd := m.setFocus(m.focus)
			return m, cmd
		case msg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus((m.focus + 1) % len(m.inputs))
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		return m, cmd
	case key.Matches(msg, m.keys.Calculate):
		in, err := m.Input()
		if err != nil {
			return m, func() tea.Msg { return ErrorMsg{Err: err} }
		}
		m.err = nil
		return m, calculateCmd(m.engine, in)
	}

	return m.updateFocused(msg)
}

// setFocus moves focus to input i
func (m *Model) setFocus(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

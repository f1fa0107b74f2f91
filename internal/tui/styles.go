package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorMuted   = lipgloss.Color("#6C6C6C")
	ColorBorder  = lipgloss.Color("#3C3C3C")

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	LabelStyle        = lipgloss.NewStyle().Width(28)
	FocusedLabelStyle = LabelStyle.Foreground(ColorPrimary).Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	RefundStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	OwedStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	NoteStyle   = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorPrimary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

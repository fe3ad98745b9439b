package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/handcricket/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	ClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	ResultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	OverlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))

	focusColor = lipgloss.Color("#04B575")
)

// textStyle picks the style for the main message
func textStyle(text string) lipgloss.Style {
	switch text {
	case game.TextOut, game.TextChased, game.TextLose, game.TextNotDetected:
		return ErrorStyle
	case game.TextWin:
		return SuccessStyle
	case game.TextTie, game.TextInningsOver:
		return WarningStyle
	default:
		return TextStyle
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the conversation renderer: blue for the owner's side,
// green for the contact's side.
var (
	colorOwner   = lipgloss.Color("12")
	colorOther   = lipgloss.Color("10")
	colorDim     = lipgloss.Color("240")
	colorCursor  = lipgloss.Color("11")
	colorFrame   = lipgloss.Color("238")
	colorNameFg  = lipgloss.Color("252")
	colorTagBack = lipgloss.Color("236")
)

var (
	styleInput = lipgloss.NewStyle().Foreground(colorOwner).Bold(true)

	styleCursor  = lipgloss.NewStyle().Foreground(colorCursor).Bold(true)
	styleContact = lipgloss.NewStyle().Foreground(colorNameFg).Bold(true)
	styleSent    = lipgloss.NewStyle().Foreground(colorOwner)
	styleRecv    = lipgloss.NewStyle().Foreground(colorOther)
	styleFaint   = lipgloss.NewStyle().Foreground(colorDim)

	styleListFrame    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFrame)
	stylePreviewFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorOwner)

	// styleViewTag marks which preview is showing.
	styleViewTag = lipgloss.NewStyle().Foreground(colorCursor).Background(colorTagBack).Padding(0, 1)
	styleStatus  = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Shared lipgloss styles for all pfadmin screens.
//
//nolint:gochecknoglobals // Styles are shared, immutable render configuration.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	CriticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true).
				Bold(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

// Default display dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 40

	// minListHeight is the floor for the list area after fixed chrome is
	// subtracted from the terminal height.
	minListHeight = 3
)

// Key strings matched against tea.KeyMsg.String().
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyE     = "e"
	keyT     = "t"
	keyV     = "v"
)

// IsTTY reports whether stdout is attached to a terminal. Interactive
// screens and confirmation prompts are skipped when it is not.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// Palette, in 256-colour codes.
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	commandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	argumentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boldStyle     = lipgloss.NewStyle().Bold(true)

	excellentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	needsWorkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Header styles a section title.
func Header(text string) string { return headerStyle.Render(text) }

// Category styles a command category label.
func Category(text string) string { return categoryStyle.Render(text) }

// Command styles a command name such as "/report".
func Command(text string) string { return commandStyle.Render(text) }

// Argument styles command arguments and examples.
func Argument(text string) string { return argumentStyle.Render(text) }

// Dim styles secondary text.
func Dim(text string) string { return dimStyle.Render(text) }

// Bold styles emphasised text.
func Bold(text string) string { return boldStyle.Render(text) }

// Status styles text in the colour of a metric band, matching the report's
// accent, warning and error colours.
func Status(s metrics.Status, text string) string {
	switch s {
	case metrics.Good:
		return goodStyle.Render(text)
	case metrics.NeedsWork:
		return needsWorkStyle.Render(text)
	default:
		return excellentStyle.Render(text)
	}
}

// CommandWithShortcut renders "/help (or /h)".
func CommandWithShortcut(cmd, shortcut string) string {
	if shortcut == "" {
		return Command(cmd)
	}
	return Command(cmd) + Dim(" (or ") + Argument(shortcut) + Dim(")")
}

// HighlightExample colours the command word of an example line and its
// arguments separately.
func HighlightExample(line string) string {
	cmd, args, found := strings.Cut(line, " ")
	if !found {
		return Command(cmd)
	}
	return Command(cmd) + Argument(" "+strings.TrimLeft(args, " "))
}

// ExampleLine renders "  /report QAOA -> Report for QAOA".
func ExampleLine(cmd, desc string) string {
	return "  " + HighlightExample(cmd) + Dim(" -> ") + Dim(desc)
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box draws fixed-width bordered panels with rounded corners.
type Box struct {
	// Width is the inner content width, excluding borders.
	Width int
}

// NewBox creates a Box with the given inner width.
func NewBox(width int) *Box {
	return &Box{Width: width}
}

// Top returns ╭───╮.
func (b *Box) Top() string {
	return BoxTopLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTopRight
}

// Mid returns ├───┤.
func (b *Box) Mid() string {
	return BoxTeeLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTeeRight
}

// Bottom returns ╰───╯.
func (b *Box) Bottom() string {
	return BoxBottomLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxBottomRight
}

// Row left-aligns content, truncating it to the box width.
func (b *Box) Row(content string) string {
	content = fit(content, b.Width)
	return BoxVertical + PadRight(content, b.Width) + BoxVertical
}

// RowCenter centres content, truncating it to the box width.
func (b *Box) RowCenter(content string) string {
	content = fit(content, b.Width)
	total := b.Width - lipgloss.Width(content)
	left := total / 2
	return BoxVertical + strings.Repeat(" ", left) + content + strings.Repeat(" ", total-left) + BoxVertical
}

// EmptyRow returns │   │.
func (b *Box) EmptyRow() string {
	return BoxVertical + strings.Repeat(" ", b.Width) + BoxVertical
}

// Panel draws lines inside a box titled with title.
func Panel(title string, width int, lines ...string) string {
	b := NewBox(width)
	out := []string{b.Top(), b.RowCenter(Bold(title)), b.Mid()}
	for _, l := range lines {
		out = append(out, b.Row(" "+l))
	}
	out = append(out, b.Bottom())
	return strings.Join(out, "\n")
}

// fit truncates s to width visible cells, keeping escape sequences intact.
func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// PadRight pads s with spaces to width visible cells.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PadLeft pads s on the left to width visible cells.
func PadLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// Package view renders terminal output for the shell and the CLI: the
// command help, bordered boxes and aligned tables of scores and history.
//
// Styling uses lipgloss, which drops colour automatically when the output is
// not a terminal, so the same functions serve interactive use and logs.
//
//	r := view.NewRenderer(os.Stdout)
//	r.RenderFull()               // all shell commands by category
//	r.RenderCommand("report")    // one command with examples
//
//	fmt.Println(view.ComparisonTable(c.Results))
package view

import (
	"fmt"
	"io"
)

// Box drawing characters.
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// Renderer writes help output.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a help renderer that writes to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) writeln(s string) {
	fmt.Fprintln(r.w, s)
}

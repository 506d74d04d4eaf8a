package view

import (
	"fmt"
	"strings"
)

const (
	commandColumnWidth = 20
	indentCategory     = "  "
	indentCommand      = "    "
	indentExample      = "      "
)

// RenderFull writes every command grouped by category.
func (r *Renderer) RenderFull() {
	r.writeln("")
	r.writeln(Header(indentCategory + "Quantum Model Report Commands"))
	r.writeln("")
	for _, cat := range CategoryOrder {
		r.renderCategory(cat)
	}
	r.renderKeys()
}

// RenderCommand writes the detailed help of one command. It reports false
// when name is not a known command.
func (r *Renderer) RenderCommand(name string) bool {
	cmd, ok := LookupCommand(name)
	if !ok {
		r.writeln(fmt.Sprintf(indentCategory+"Command '%s' not found. Use /help to see all commands.", name))
		return false
	}

	r.writeln("")
	r.writeln(indentCategory + CommandWithShortcut(cmd.Name, cmd.Shortcut))
	r.writeln(indentCategory + Dim(cmd.Description))
	r.writeln("")
	r.writeln(indentCategory + Bold("Usage:") + " " + HighlightExample(cmd.Usage))
	r.writeln("")
	if len(cmd.Examples) > 0 {
		r.writeln(indentCategory + Bold("Examples:"))
		for _, ex := range cmd.Examples {
			r.writeln(indentCommand + ExampleLine(ex.Command, ex.Description))
		}
		r.writeln("")
	}
	return true
}

func (r *Renderer) renderCategory(cat CommandCategory) {
	cmds := CommandsIn(cat)
	if len(cmds) == 0 {
		return
	}
	r.writeln(indentCategory + Category(cat.DisplayName()))
	r.writeln(indentCategory + Dim(BoxTeeLeft+strings.Repeat(BoxHorizontal, commandColumnWidth+20)))
	for _, c := range cmds {
		name := PadRight(CommandWithShortcut(c.Name, c.Shortcut), commandColumnWidth)
		r.writeln(indentCommand + Dim(BoxVertical+" ") + name + Dim(c.Description))
		if len(c.Examples) > 0 {
			r.writeln(indentExample + Dim(BoxVertical+"   e.g. ") + HighlightExample(c.Examples[0].Command))
		}
	}
	r.writeln("")
}

func (r *Renderer) renderKeys() {
	r.writeln(indentCategory + Category("Keys"))
	r.writeln(indentCategory + Dim(BoxTeeLeft+strings.Repeat(BoxHorizontal, commandColumnWidth+20)))
	r.writeln(indentCommand + Dim(BoxVertical+" ") +
		Argument("Tab") + Dim(" complete  ") +
		Argument("Ctrl+C") + Dim(" cancel  ") +
		Argument("Ctrl+D") + Dim(" exit"))
	r.writeln("")
}

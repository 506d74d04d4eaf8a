package view

import "strings"

// CommandCategory groups shell commands in the help output.
type CommandCategory string

const (
	CategoryDatasets CommandCategory = "datasets"
	CategoryReports  CommandCategory = "reports"
	CategoryHistory  CommandCategory = "history"
	CategoryGeneral  CommandCategory = "general"
)

// CategoryOrder is the order categories appear in the full help.
var CategoryOrder = []CommandCategory{
	CategoryDatasets,
	CategoryReports,
	CategoryHistory,
	CategoryGeneral,
}

var categoryNames = map[CommandCategory]string{
	CategoryDatasets: "Datasets & Evaluation",
	CategoryReports:  "Reports",
	CategoryHistory:  "History",
	CategoryGeneral:  "General",
}

// DisplayName returns the heading of the category.
func (c CommandCategory) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// ShellCommand documents one shell command.
type ShellCommand struct {
	Name        string
	Shortcut    string
	Category    CommandCategory
	Description string
	Usage       string
	Examples    []Example
}

// Example is a sample invocation.
type Example struct {
	Command     string
	Description string
}

// Commands is the shell command registry. The shell dispatches on these
// names and the completer offers them.
var Commands = []ShellCommand{
	{
		Name:        "/datasets",
		Shortcut:    "/ds",
		Category:    CategoryDatasets,
		Description: "List the demo datasets",
		Usage:       "/datasets",
	},
	{
		Name:        "/select",
		Category:    CategoryDatasets,
		Description: "Choose the dataset later commands use",
		Usage:       "/select <dataset>",
		Examples: []Example{
			{Command: "/select particles", Description: "Use the particle physics dataset"},
		},
	},
	{
		Name:        "/evaluate",
		Shortcut:    "/e",
		Category:    CategoryDatasets,
		Description: "Compare the models on a dataset",
		Usage:       "/evaluate [dataset]",
		Examples: []Example{
			{Command: "/evaluate", Description: "Evaluate the selected dataset"},
			{Command: "/evaluate astronomy", Description: "Evaluate astronomy directly"},
		},
	},
	{
		Name:        "/train",
		Category:    CategoryDatasets,
		Description: "Run a simulated training with default settings",
		Usage:       "/train",
	},
	{
		Name:        "/report",
		Shortcut:    "/r",
		Category:    CategoryReports,
		Description: "Write a PDF report of the last evaluation",
		Usage:       "/report [model] [file]",
		Examples: []Example{
			{Command: "/report", Description: "Report the recommended model"},
			{Command: "/report QAOA qaoa.pdf", Description: "Report QAOA into qaoa.pdf"},
		},
	},
	{
		Name:        "/history",
		Category:    CategoryHistory,
		Description: "List past runs or show one run",
		Usage:       "/history [id]",
		Examples: []Example{
			{Command: "/history", Description: "List all runs, newest first"},
		},
	},
	{
		Name:        "/help",
		Shortcut:    "/h",
		Category:    CategoryGeneral,
		Description: "Show this help message",
		Usage:       "/help [command]",
		Examples: []Example{
			{Command: "/help report", Description: "Show detailed /report help"},
		},
	},
	{
		Name:        "/quit",
		Shortcut:    "/q",
		Category:    CategoryGeneral,
		Description: "Exit the shell",
		Usage:       "/quit",
	},
}

// CommandsIn returns the commands of one category in registry order.
func CommandsIn(cat CommandCategory) []ShellCommand {
	var out []ShellCommand
	for _, c := range Commands {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

// LookupCommand finds a command by name or shortcut, with or without the
// leading slash.
func LookupCommand(name string) (ShellCommand, bool) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	for _, c := range Commands {
		if c.Name == name || (c.Shortcut != "" && c.Shortcut == name) {
			return c, true
		}
	}
	return ShellCommand{}, false
}

// CommandNames returns every command name followed by every shortcut.
func CommandNames() []string {
	out := make([]string, 0, len(Commands)*2)
	for _, c := range Commands {
		out = append(out, c.Name)
	}
	for _, c := range Commands {
		if c.Shortcut != "" {
			out = append(out, c.Shortcut)
		}
	}
	return out
}

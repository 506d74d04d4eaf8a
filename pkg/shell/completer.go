package shell

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/view"
)

// datasetCommands take a dataset ID as their first argument.
var datasetCommands = []string{"/select", "/evaluate", "/e"}

// modelCommands take a model name as their first argument.
var modelCommands = []string{"/report", "/r"}

// ShellCompleter completes command names, dataset IDs and model names.
// It implements readline.AutoCompleter.
type ShellCompleter struct {
	registry *evaluator.Registry
}

// NewShellCompleter creates a completer. A nil registry disables dataset
// completion.
func NewShellCompleter(registry *evaluator.Registry) *ShellCompleter {
	return &ShellCompleter{registry: registry}
}

var _ readline.AutoCompleter = (*ShellCompleter)(nil)

// Do implements readline.AutoCompleter. It returns candidate suffixes for
// the word under the cursor and the length of that word.
func (c *ShellCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if len(line) == 0 || pos <= 0 {
		return nil, 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	lineStr := string(line[:pos])
	wordStart := findWordStart(lineStr)
	word := lineStr[wordStart:]

	fields := strings.Fields(lineStr[:wordStart])
	switch {
	case len(fields) == 0:
		if !strings.HasPrefix(word, "/") {
			return nil, 0
		}
		return complete(word, view.CommandNames())
	case len(fields) == 1 && contains(datasetCommands, fields[0]):
		if c.registry == nil {
			return nil, 0
		}
		return complete(word, c.registry.IDs())
	case len(fields) == 1 && contains(modelCommands, fields[0]):
		return complete(word, append(append([]string{}, evaluator.Models...), trainingTarget))
	case len(fields) == 1 && (fields[0] == "/help" || fields[0] == "/h"):
		names := make([]string, 0, len(view.Commands))
		for _, cmd := range view.Commands {
			names = append(names, strings.TrimPrefix(cmd.Name, "/"))
		}
		return complete(word, names)
	}
	return nil, 0
}

// findWordStart returns the index after the last space or tab.
func findWordStart(s string) int {
	return strings.LastIndexAny(s, " \t") + 1
}

// complete returns the suffixes of candidates that extend prefix.
func complete(prefix string, candidates []string) ([][]rune, int) {
	var matches [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			matches = append(matches, []rune(cand[len(prefix):]+" "))
		}
	}
	return matches, len(prefix)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

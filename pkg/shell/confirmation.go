package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

// Prompter asks the user to confirm an action, such as overwriting an
// existing report file.
type Prompter interface {
	// Confirm shows message and reports whether the user answered yes.
	Confirm(message string) (bool, error)
}

// InteractivePrompter reads answers from a reader, stdin by default.
type InteractivePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewInteractivePrompter creates a prompter on stdin and stdout.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stdout)
}

// NewInteractivePrompterWithIO creates a prompter on the given streams.
func NewInteractivePrompterWithIO(reader io.Reader, writer io.Writer) *InteractivePrompter {
	return &InteractivePrompter{reader: bufio.NewReader(reader), writer: writer}
}

// Confirm prints "message [y/N]: " and accepts "y" or "yes" in any case.
// Anything else, including end of input, is no.
func (p *InteractivePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	answer, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, werrors.Wrap(err, werrors.ErrFileRead, werrors.CategoryIO, "failed to read confirmation")
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

var _ Prompter = (*InteractivePrompter)(nil)

// MockPrompter returns a fixed answer and records what it was asked.
type MockPrompter struct {
	Response bool
	Error    error
	Prompts  []string
}

// NewMockPrompter creates a MockPrompter answering response.
func NewMockPrompter(response bool) *MockPrompter {
	return &MockPrompter{Response: response}
}

// Confirm records message and returns the configured answer.
func (m *MockPrompter) Confirm(message string) (bool, error) {
	m.Prompts = append(m.Prompts, message)
	if m.Error != nil {
		return false, m.Error
	}
	return m.Response, nil
}

// CallCount returns how many times Confirm was called.
func (m *MockPrompter) CallCount() int { return len(m.Prompts) }

// LastPrompt returns the latest message, or "" when never asked.
func (m *MockPrompter) LastPrompt() string {
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

var _ Prompter = (*MockPrompter)(nil)

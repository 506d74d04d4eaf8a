package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInteractivePrompterAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"  yes  \n", true},
		{"YES", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"yep\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewInteractivePrompterWithIO(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("Overwrite?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Overwrite? [y/N]: " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestInteractivePrompterSequentialAnswers(t *testing.T) {
	p := NewInteractivePrompterWithIO(strings.NewReader("n\ny\n"), &bytes.Buffer{})
	first, _ := p.Confirm("a")
	second, _ := p.Confirm("b")
	if first || !second {
		t.Errorf("answers = %v, %v; want false, true", first, second)
	}
}

func TestMockPrompter(t *testing.T) {
	m := NewMockPrompter(true)
	if m.LastPrompt() != "" {
		t.Errorf("LastPrompt before use = %q", m.LastPrompt())
	}
	ok, err := m.Confirm("one")
	if !ok || err != nil {
		t.Errorf("Confirm = %v, %v", ok, err)
	}
	m.Confirm("two")
	if m.CallCount() != 2 || m.LastPrompt() != "two" {
		t.Errorf("CallCount = %d, LastPrompt = %q", m.CallCount(), m.LastPrompt())
	}

	m.Error = errors.New("closed")
	if ok, err := m.Confirm("three"); ok || err == nil {
		t.Errorf("Confirm with error = %v, %v", ok, err)
	}
}

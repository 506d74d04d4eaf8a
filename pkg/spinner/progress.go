package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Bar characters.
const (
	barFilled = "█"
	barEmpty  = "░"
)

// ProgressConfig holds configuration options for a progress bar.
type ProgressConfig struct {
	// Total is the value that counts as complete. Defaults to 100.
	Total int

	Message string

	// Width is the bar width in characters. Defaults to 20.
	Width int

	ShowPercentage bool
	ShowElapsed    bool

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection. Off a terminal a line is printed
	// each time progress crosses a 10% step.
	IsTTY *bool
}

// DefaultProgressConfig returns the progress bar defaults.
func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		Total:          100,
		Message:        "Processing...",
		Width:          20,
		ShowPercentage: true,
		ShowElapsed:    true,
		Writer:         os.Stderr,
	}
}

// ProgressBar shows a bar for runs that report how far along they are.
type ProgressBar struct {
	mu sync.Mutex

	config    ProgressConfig
	tty       bool
	out       line
	current   int
	active    bool
	startTime time.Time
}

// NewProgress creates a progress bar with the default configuration.
func NewProgress(total int, message string) *ProgressBar {
	cfg := DefaultProgressConfig()
	cfg.Total = total
	cfg.Message = message
	return NewProgressWithConfig(cfg)
}

// NewProgressWithConfig creates a progress bar, filling unset options with
// defaults.
func NewProgressWithConfig(config ProgressConfig) *ProgressBar {
	if config.Total <= 0 {
		config.Total = 100
	}
	if config.Width <= 0 {
		config.Width = 20
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	return &ProgressBar{
		config: config,
		tty:    resolveTTY(config.Writer, config.IsTTY),
		out:    line{w: config.Writer},
	}
}

// Current returns the current progress value.
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Start shows the empty bar.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return
	}
	p.active = true
	p.current = 0
	p.startTime = time.Now()

	if p.tty {
		fmt.Fprint(p.config.Writer, hideCursor)
		p.out.write(p.buildOutput())
		return
	}
	fmt.Fprintln(p.config.Writer, p.buildOutput())
}

// Set moves the bar to n, clamped to [0, Total].
func (p *ProgressBar) Set(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > p.config.Total {
		n = p.config.Total
	}
	old := p.current
	p.current = n

	if p.tty {
		p.out.write(p.buildOutput())
		return
	}
	if n*10/p.config.Total > old*10/p.config.Total {
		fmt.Fprintln(p.config.Writer, p.buildOutput())
	}
}

// Func adapts the bar to a progress callback.
func (p *ProgressBar) Func() func(int) {
	return p.Set
}

// Complete stops the bar and prints a success line.
func (p *ProgressBar) Complete(message string) { p.finish(true, message) }

// Fail stops the bar and prints a failure line.
func (p *ProgressBar) Fail(message string) { p.finish(false, message) }

func (p *ProgressBar) finish(ok bool, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if message == "" {
		message = p.config.Message + " complete"
	}
	var elapsed time.Duration
	if !p.startTime.IsZero() {
		elapsed = time.Since(p.startTime)
	}
	if p.active && p.tty {
		p.out.clear()
		fmt.Fprint(p.config.Writer, showCursor)
	}
	p.active = false
	fmt.Fprint(p.config.Writer, statusLine(p.tty, ok, message, elapsed, p.config.ShowElapsed))
}

// buildOutput renders "Message [████░░░░] 40% (2.4s)". Caller holds mu.
func (p *ProgressBar) buildOutput() string {
	var parts []string
	if p.config.Message != "" {
		parts = append(parts, p.config.Message)
	}

	filled := p.current * p.config.Width / p.config.Total
	parts = append(parts, "["+strings.Repeat(barFilled, filled)+strings.Repeat(barEmpty, p.config.Width-filled)+"]")

	if p.config.ShowPercentage {
		parts = append(parts, fmt.Sprintf("%.0f%%", float64(p.current)/float64(p.config.Total)*100))
	}
	if p.config.ShowElapsed && !p.startTime.IsZero() {
		parts = append(parts, formatElapsed(time.Since(p.startTime)))
	}
	return strings.Join(parts, " ")
}

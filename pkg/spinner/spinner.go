package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// CharSet defines a set of characters for spinner animation.
type CharSet []string

// Spinner character sets.
var (
	Braille = CharSet{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	Line    = CharSet{"|", "/", "-", "\\"}
)

// Config holds configuration options for a spinner.
type Config struct {
	// CharSet defaults to Braille.
	CharSet CharSet

	Message string

	// RefreshRate defaults to 80ms.
	RefreshRate time.Duration

	// ShowElapsed appends "(1.2s)" to the message.
	ShowElapsed bool

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection. Off a terminal the spinner prints
	// one line on Start and one on completion.
	IsTTY *bool
}

// DefaultConfig returns the spinner defaults.
func DefaultConfig() Config {
	return Config{
		CharSet:     Braille,
		Message:     "Working...",
		RefreshRate: 80 * time.Millisecond,
		ShowElapsed: true,
		Writer:      os.Stderr,
	}
}

// Spinner animates a message while a wait of unknown length runs.
type Spinner struct {
	mu sync.Mutex

	config    Config
	tty       bool
	out       line
	active    bool
	startTime time.Time
	frame     int
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// New creates a spinner with the default configuration.
func New(message string) *Spinner {
	cfg := DefaultConfig()
	cfg.Message = message
	return NewWithConfig(cfg)
}

// NewWithConfig creates a spinner, filling unset options with defaults.
func NewWithConfig(config Config) *Spinner {
	if len(config.CharSet) == 0 {
		config.CharSet = Braille
	}
	if config.RefreshRate <= 0 {
		config.RefreshRate = 80 * time.Millisecond
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	return &Spinner{
		config: config,
		tty:    resolveTTY(config.Writer, config.IsTTY),
		out:    line{w: config.Writer},
	}
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.startTime = time.Now()
	s.frame = 0

	if !s.tty {
		fmt.Fprintf(s.config.Writer, "%s...\n", s.config.Message)
		return
	}
	fmt.Fprint(s.config.Writer, hideCursor)
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.spin(s.stopCh, s.doneCh)
}

func (s *Spinner) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.config.RefreshRate)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	char := s.config.CharSet[s.frame%len(s.config.CharSet)]
	s.frame++

	out := char + " " + s.config.Message
	if s.config.ShowElapsed {
		out += " " + formatElapsed(time.Since(s.startTime))
	}
	s.out.write(out)
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Message = message
}

// Stop halts the animation and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	stop, done := s.stopCh, s.doneCh
	s.mu.Unlock()

	if !s.tty {
		return
	}
	close(stop)
	<-done

	s.mu.Lock()
	s.out.clear()
	fmt.Fprint(s.config.Writer, showCursor)
	s.mu.Unlock()
}

// Success stops the spinner and prints a green check line.
func (s *Spinner) Success(message string) { s.finish(true, message) }

// Fail stops the spinner and prints a red cross line.
func (s *Spinner) Fail(message string) { s.finish(false, message) }

func (s *Spinner) finish(ok bool, message string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		message = s.config.Message
	}
	var elapsed time.Duration
	if !s.startTime.IsZero() {
		elapsed = time.Since(s.startTime)
	}
	fmt.Fprint(s.config.Writer, statusLine(s.tty, ok, message, elapsed, s.config.ShowElapsed))
}

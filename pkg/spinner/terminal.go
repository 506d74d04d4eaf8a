// Package spinner provides terminal feedback for the simulated evaluation and
// training runs: an animated spinner for waits of unknown length and a
// progress bar for runs that report a percentage.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ANSI cursor control.
const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"
)

// Status indicator symbols.
const (
	symbolSuccess = "✓"
	symbolFailure = "✗"
)

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// resolveTTY prefers an explicit override over detection.
func resolveTTY(w io.Writer, override *bool) bool {
	if override != nil {
		return *override
	}
	return isTerminalWriter(w)
}

// line rewrites a single terminal line in place.
type line struct {
	w       io.Writer
	lastLen int
}

func (l *line) write(s string) {
	l.clear()
	fmt.Fprint(l.w, s)
	l.lastLen = len(s)
}

func (l *line) clear() {
	if l.lastLen > 0 {
		fmt.Fprint(l.w, carriageReturn+strings.Repeat(" ", l.lastLen)+carriageReturn)
		l.lastLen = 0
	}
}

// statusLine renders a final "✓ message (1.2s)" line. Colour is applied only
// on terminals.
func statusLine(tty, ok bool, message string, elapsed time.Duration, showElapsed bool) string {
	symbol, attr := symbolSuccess, color.FgGreen
	if !ok {
		symbol, attr = symbolFailure, color.FgRed
	}
	c := color.New(attr)
	if tty {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	out := c.Sprint(symbol) + " " + message
	if showElapsed && elapsed > 0 {
		out += " " + formatElapsed(elapsed)
	}
	return out + "\n"
}

// formatElapsed renders "(1.2s)" below a minute and "(1m 30s)" above.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

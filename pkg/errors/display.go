package errors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Formatter renders errors for terminal display.
type Formatter struct {
	// UseColor enables colored output. When false, output is plain text
	// suitable for logs.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent prefixes context and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter for stderr, colored when stderr is a TTY.
func DefaultFormatter() *Formatter {
	return &Formatter{
		UseColor: IsTTY(os.Stderr),
		Writer:   os.Stderr,
		Indent:   "  ",
	}
}

// IsTTY returns true if f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// painter returns a sprint function that honours UseColor.
func (f *Formatter) painter(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if f.UseColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Format renders err. ReportErrors show code, message, context, cause and
// suggestions; other errors get a single "Error:" line.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	re, ok := AsReportError(err)
	if !ok {
		return f.painter(color.FgRed)("Error: ") + err.Error()
	}

	red := f.painter(color.FgRed, color.Bold)
	yellow := f.painter(color.FgYellow)
	dim := f.painter(color.FgHiBlack)
	cyan := f.painter(color.FgCyan)

	var sb strings.Builder
	sb.WriteString(red(fmt.Sprintf("ERROR [%s]: ", re.Code)))
	sb.WriteString(re.Message)
	sb.WriteString("\n")

	keys := make([]string, 0, len(re.Context))
	for k := range re.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(f.Indent + yellow(k+": ") + re.Context[k] + "\n")
	}

	if re.Cause != nil {
		sb.WriteString(f.Indent + dim("cause: "+re.Cause.Error()) + "\n")
	}

	if re.HasSuggestions() {
		if re.HasContext() || re.Cause != nil {
			sb.WriteString("\n")
		}
		lines := make([]string, 0, len(re.Suggestions))
		for _, s := range re.Suggestions {
			lines = append(lines, f.Indent+cyan("→ "+s))
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Display writes the formatted error to the formatter's writer.
func (f *Formatter) Display(err error) {
	if err == nil {
		return
	}
	w := f.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, f.Format(err))
}

// Display writes err to stderr with default settings.
func Display(err error) {
	DefaultFormatter().Display(err)
}

// Sprint returns the formatted error without colors.
func Sprint(err error) string {
	f := &Formatter{UseColor: false, Writer: io.Discard, Indent: "  "}
	return f.Format(err)
}

// CategoryLabel returns a human-readable label for a category.
func CategoryLabel(cat Category) string {
	switch cat {
	case CategoryConfig:
		return "Configuration Error"
	case CategoryValidation:
		return "Validation Error"
	case CategoryRender:
		return "Render Error"
	case CategoryData:
		return "Data Error"
	case CategoryCommand:
		return "Command Error"
	case CategoryNetwork:
		return "Network Error"
	case CategoryIO:
		return "I/O Error"
	case CategoryInternal:
		return "Internal Error"
	default:
		return "Error"
	}
}

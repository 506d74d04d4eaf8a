// Package errors provides structured error types for qmreport.
// Errors carry a stable code, key/value context, an optional cause and
// remediation suggestions that the CLI and API surfaces display.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig     Category = "config"     // Configuration loading/parsing errors
	CategoryValidation Category = "validation" // Request and input validation errors
	CategoryRender     Category = "render"     // Report layout and drawing errors
	CategoryData       Category = "data"       // Dataset and history lookups
	CategoryCommand    Category = "command"    // Shell command errors
	CategoryNetwork    Category = "network"    // Server/listener errors
	CategoryIO         Category = "io"         // File/IO errors
	CategoryInternal   Category = "internal"   // Internal/unexpected errors
)

// ReportError is a structured error with context and suggestions.
type ReportError struct {
	// Code is a stable identifier for this error type (e.g., "MATRIX_MALFORMED").
	Code string

	// Category classifies this error for consistent handling.
	Category Category

	// Message describes what went wrong.
	Message string

	// Context holds additional key-value details.
	Context map[string]string

	// Cause is the wrapped underlying error, if any.
	Cause error

	// Suggestions are actionable remediation steps for the user.
	Suggestions []string
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ReportError with the same Code.
func (e *ReportError) Is(target error) bool {
	if t, ok := target.(*ReportError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a ReportError with the given code, category and message.
func New(code string, category Category, message string) *ReportError {
	return &ReportError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf is New with a formatted message.
func Newf(code string, category Category, format string, args ...interface{}) *ReportError {
	return New(code, category, fmt.Sprintf(format, args...))
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *ReportError) WithContext(key, value string) *ReportError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *ReportError) WithCause(cause error) *ReportError {
	e.Cause = cause
	return e
}

// WithSuggestion appends a remediation suggestion.
func (e *ReportError) WithSuggestion(suggestion string) *ReportError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// HasContext returns true if the error has context information.
func (e *ReportError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *ReportError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns the context entries as sorted key="value" pairs.
func (e *ReportError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
	}
	return strings.Join(parts, ", ")
}

// Wrap wraps err in a ReportError and attaches registered suggestions.
func Wrap(err error, code string, category Category, message string) *ReportError {
	return AttachSuggestions(New(code, category, message).WithCause(err))
}

// AsReportError finds the first ReportError in err's chain.
func AsReportError(err error) (*ReportError, bool) {
	if err == nil {
		return nil, false
	}
	var re *ReportError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsCategory checks if err is a ReportError with the given category.
func IsCategory(err error, category Category) bool {
	if re, ok := AsReportError(err); ok {
		return re.Category == category
	}
	return false
}

// IsCode checks if err is a ReportError with the given code.
func IsCode(err error, code string) bool {
	if re, ok := AsReportError(err); ok {
		return re.Code == code
	}
	return false
}

// CodeOf returns the code of err, or ErrInternal for foreign errors.
func CodeOf(err error) string {
	if re, ok := AsReportError(err); ok {
		return re.Code
	}
	return ErrInternal
}

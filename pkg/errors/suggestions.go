package errors

import (
	"sort"
	"sync"
)

// Suggestion is a remediation hint registered for an error code.
type Suggestion struct {
	// Text is shown to the user.
	Text string

	// Priority orders suggestions; higher comes first.
	Priority int
}

// Registry maps error codes to suggestions.
type Registry struct {
	mu          sync.RWMutex
	suggestions map[string][]Suggestion
}

// NewRegistry creates an empty suggestion registry.
func NewRegistry() *Registry {
	return &Registry{suggestions: make(map[string][]Suggestion)}
}

// Register adds a suggestion with default priority.
func (r *Registry) Register(code, text string) *Registry {
	return r.RegisterWithPriority(code, text, 0)
}

// RegisterWithPriority adds a suggestion with an explicit priority.
func (r *Registry) RegisterWithPriority(code, text string, priority int) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions[code] = append(r.suggestions[code], Suggestion{Text: text, Priority: priority})
	return r
}

// Get returns the suggestion texts for code ordered by priority.
func (r *Registry) Get(code string) []string {
	r.mu.RLock()
	list := append([]Suggestion(nil), r.suggestions[code]...)
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority > list[j].Priority })
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Text)
	}
	return out
}

// HasSuggestions reports whether code has any registered suggestions.
func (r *Registry) HasSuggestions(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suggestions[code]) > 0
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetSuggestions returns the default registry's suggestions for code.
func GetSuggestions(code string) []string {
	return defaultRegistry.Get(code)
}

// AttachSuggestions appends the registered suggestions for err.Code.
func AttachSuggestions(err *ReportError) *ReportError {
	if err == nil {
		return nil
	}
	for _, s := range defaultRegistry.Get(err.Code) {
		err.WithSuggestion(s)
	}
	return err
}

func init() {
	defaultRegistry.
		RegisterWithPriority(ErrConfigNotFound, "Run 'qmreport config init' to create a default configuration", 10).
		Register(ErrConfigNotFound, "Pass --config to point at an existing file").
		Register(ErrConfigParseFailed, "Check the YAML syntax of the configuration file").
		Register(ErrConfigInvalid, "Run 'qmreport config show' to inspect the effective values").
		Register(ErrConfigAlreadyExists, "Remove the existing file or choose another path").
		Register(ErrRequestInvalid, "Compare the request body against the report request schema").
		Register(ErrFileFormatInvalid, "Upload comma-separated files with a .csv extension").
		Register(ErrDatasetChoiceEmpty, "Choose 'single' for one CSV or 'separate' for train and test CSVs").
		Register(ErrMatrixMalformed, "Supply a non-empty square matrix of non-negative counts").
		Register(ErrPageOutOfRange, "Request a page between 1 and the document's page count").
		Register(ErrDatasetNotFound, "Run 'qmreport datasets' to see the available datasets").
		Register(ErrHistoryNotFound, "Run 'qmreport history list' to see record identifiers").
		Register(ErrFormatUnsupported, "Use one of the supported formats listed in the error context").
		Register(ErrServerStart, "Check that the port is free or change server.port").
		Register(ErrFileWrite, "Check that the output directory exists and is writable")
}

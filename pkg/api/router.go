// Package api provides the HTTP/WebSocket server that generates reports,
// runs the mock evaluations and serves the evaluation history.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// HandlerFunc is the function signature for API handlers.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// Route represents a registered route with its handler.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// Router matches method and path, with :param segments captured into the
// request context. Routes are tried in registration order.
type Router struct {
	routes []Route
	mu     sync.RWMutex

	// NotFound is called when no route matches
	NotFound http.Handler
}

// NewRouter creates a new Router instance.
func NewRouter() *Router {
	return &Router{
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "The requested resource was not found")
		}),
	}
}

// Handle registers a handler for the given method and pattern.
func (rt *Router) Handle(method, pattern string, handler HandlerFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.routes = append(rt.routes, Route{Method: method, Pattern: pattern, Handler: handler})
}

// GET registers a handler for GET requests.
func (rt *Router) GET(pattern string, handler HandlerFunc) {
	rt.Handle(http.MethodGet, pattern, handler)
}

// POST registers a handler for POST requests.
func (rt *Router) POST(pattern string, handler HandlerFunc) {
	rt.Handle(http.MethodPost, pattern, handler)
}

// Routes returns a copy of the registered routes.
func (rt *Router) Routes() []Route {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return append([]Route(nil), rt.routes...)
}

// ServeHTTP implements the http.Handler interface.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mu.RLock()
	routes := rt.routes
	rt.mu.RUnlock()

	pathMatched := false
	for _, route := range routes {
		params, matched := matchPath(route.Pattern, r.URL.Path)
		if !matched {
			continue
		}
		if route.Method != r.Method {
			pathMatched = true
			continue
		}
		if len(params) > 0 {
			r = setPathParams(r, params)
		}
		route.Handler(w, r)
		return
	}

	if pathMatched {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path)
		return
	}
	rt.NotFound.ServeHTTP(w, r)
}

// matchPath matches /api/datasets/:id against /api/datasets/wines.
func matchPath(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			params[part[1:]] = pathParts[i]
		} else if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

type contextKey string

const pathParamsKey contextKey = "pathParams"

func setPathParams(r *http.Request, params map[string]string) *http.Request {
	ctx := context.WithValue(r.Context(), pathParamsKey, params)
	return r.WithContext(ctx)
}

// PathParam extracts a path parameter from the request.
func PathParam(r *http.Request, name string) string {
	params, ok := r.Context().Value(pathParamsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[name]
}

// QueryInt reads an integer query parameter, returning def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, werrors.Ef(werrors.ErrRequestInvalid, "query parameter %s must be an integer", name).
			WithContext("value", raw)
	}
	return v, nil
}

// -----------------------------------------------------------------------------
// Response Helpers
// -----------------------------------------------------------------------------

// APIResponse is the standard response wrapper for API endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Context     map[string]string `json:"context,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeAPIError(w, status, &APIError{Code: code, Message: message})
}

func writeAPIError(w http.ResponseWriter, status int, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: apiErr})
}

// StatusFor maps an error to its HTTP status: validation and render input
// errors are 400, missing data 404, everything else 500.
func StatusFor(err error) int {
	switch werrors.CodeOf(err) {
	case werrors.ErrDatasetNotFound, werrors.ErrHistoryNotFound, werrors.ErrHistoryEmpty:
		return http.StatusNotFound
	case werrors.ErrMatrixMalformed, werrors.ErrPageOutOfRange, werrors.ErrEmptyDocument:
		return http.StatusBadRequest
	case werrors.ErrCancelled:
		return http.StatusServiceUnavailable
	}
	if werrors.IsCategory(err, werrors.CategoryValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteReportError writes err with its code, context and suggestions.
// Internal errors are reported without detail.
func WriteReportError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	re, ok := werrors.AsReportError(err)
	if !ok || status == http.StatusInternalServerError {
		WriteError(w, status, werrors.CodeOf(err), "An unexpected error occurred")
		return
	}
	writeAPIError(w, status, &APIError{
		Code:        re.Code,
		Message:     re.Message,
		Context:     re.Context,
		Suggestions: re.Suggestions,
	})
}

// ReadJSON decodes a JSON request body into target. An empty body leaves
// target untouched.
func ReadJSON(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(target)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return werrors.Wrap(err, werrors.ErrRequestInvalid, werrors.CategoryValidation, "request body is not valid JSON")
	}
	return nil
}

// ReadBody returns the raw request body.
func ReadBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrFileRead, werrors.CategoryIO, "failed to read request body")
	}
	return data, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/logging"
)

// Server is the report API server.
type Server struct {
	httpServer *http.Server
	router     *Router
	config     *ServerConfig

	mu      sync.RWMutex
	running bool
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Host is the interface to bind to (default: "localhost")
	Host string `yaml:"host" json:"host"`

	// Port is the port to listen on (default: 8081)
	Port int `yaml:"port" json:"port"`

	ReadTimeout  time.Duration `yaml:"read_timeout" json:"readTimeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idleTimeout"`

	// CORSOrigins also restricts websocket origins. "*" allows any.
	CORSOrigins []string `yaml:"cors_origins" json:"corsOrigins"`

	EnableLogging bool `yaml:"enable_logging" json:"enableLogging"`
}

// DefaultServerConfig returns the defaults for local use with the web UI
// dev server.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:          "localhost",
		Port:          8081,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   60 * time.Second,
		CORSOrigins:   []string{"http://localhost:5173"},
		EnableLogging: true,
	}
}

// NewServer creates a server. Zero fields take their defaults.
func NewServer(config *ServerConfig) *Server {
	def := DefaultServerConfig()
	if config == nil {
		config = def
	}
	if config.Host == "" {
		config.Host = def.Host
	}
	if config.Port == 0 {
		config.Port = def.Port
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = def.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = def.WriteTimeout
	}
	if config.IdleTimeout == 0 {
		config.IdleTimeout = def.IdleTimeout
	}

	return &Server{
		router: NewRouter(),
		config: config,
	}
}

// Address returns the server address in host:port format.
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Router returns the underlying router for registering handlers.
func (s *Server) Router() *Router {
	return s.router
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Handler returns the router wrapped in the middleware chain: recovery,
// request ID, logging, CORS and content type, outermost first.
func (s *Server) Handler() http.Handler {
	mws := []Middleware{RecoveryMiddleware, RequestIDMiddleware}
	if s.config.EnableLogging {
		mws = append(mws, LoggingMiddleware)
	}
	if len(s.config.CORSOrigins) > 0 {
		mws = append(mws, CORSMiddleware(s.config.CORSOrigins))
		SetUpgraderCheckOrigin(makeOriginChecker(s.config.CORSOrigins))
	}
	mws = append(mws, ContentTypeMiddleware)
	return Chain(s.router, mws...)
}

// Start listens in a goroutine and returns once the listener is up.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return werrors.E(werrors.ErrServerStart, "server is already running").WithContext("address", s.Address())
	}

	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.running = true

	// Binding failures such as a taken port surface immediately.
	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("api", "Starting server on %s", s.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.LogEvent("api", "Server error: %v", err)
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return nil
		}
		s.running = false
		return werrors.Wrap(err, werrors.ErrServerStart, werrors.CategoryNetwork, "server failed to start").
			WithContext("address", s.Address())
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	logging.LogEvent("api", "Shutting down server...")
	s.running = false

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return werrors.Wrap(err, werrors.ErrServerShutdown, werrors.CategoryNetwork, "graceful shutdown failed")
		}
	}
	return nil
}

// IsRunning returns true if the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// makeOriginChecker validates websocket origins against the CORS list.
// Requests without an Origin header are same-origin and allowed.
func makeOriginChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]bool)
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return func(r *http.Request) bool { return true }
		}
		allowed[origin] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowed[origin]
	}
}

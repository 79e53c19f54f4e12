// Package api serves the slot swap HTTP API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/slotswap/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	server  *http.Server
	logger *slog.Logger
	deps   Dependencies
	slots  *SlotHandler
	swaps  *SwapHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, deps Dependencies, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:    mux,
		logger: logger,
		deps:   deps,
		slots:  NewSlotHandler(deps, logger),
		swaps:  NewSwapHandler(deps, logger),
	}

	// Register routes
	s.registerRoutes()
	s.handler = observability.RequestLogger(logger, mux)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the routed, request-logging handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	auth := s.deps.Auth.Middleware
	once := s.deps.Idempotency.Middleware

	// Slots
	s.mux.Handle("GET /api/v1/slots", auth(http.HandlerFunc(s.slots.List)))
	s.mux.Handle("POST /api/v1/slots", auth(http.HandlerFunc(s.slots.Create)))
	s.mux.Handle("GET /api/v1/slots/export.ics", auth(http.HandlerFunc(s.slots.Export)))
	s.mux.Handle("PATCH /api/v1/slots/{slotID}", auth(http.HandlerFunc(s.slots.Update)))
	s.mux.Handle("DELETE /api/v1/slots/{slotID}", auth(http.HandlerFunc(s.slots.Delete)))

	// Swaps
	s.mux.Handle("GET /api/v1/swaps/marketplace", auth(http.HandlerFunc(s.swaps.Marketplace)))
	s.mux.Handle("POST /api/v1/swaps", auth(once(http.HandlerFunc(s.swaps.Propose))))
	s.mux.Handle("POST /api/v1/swaps/{requestID}/response", auth(once(http.HandlerFunc(s.swaps.Respond))))
	s.mux.Handle("GET /api/v1/swaps/incoming", auth(http.HandlerFunc(s.swaps.Incoming)))
	s.mux.Handle("GET /api/v1/swaps/outgoing", auth(http.HandlerFunc(s.swaps.Outgoing)))
	s.mux.Handle("GET /api/v1/swaps/history", auth(http.HandlerFunc(s.swaps.History)))
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if s.deps.Ping != nil {
		if err := s.deps.Ping(r.Context()); err != nil {
			s.logger.Warn("health check failed", "error", err)
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting slotswap API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down slotswap API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but can't do much at this point
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, apiErr *APIError) {
	writeJSON(w, apiErr.Status, map[string]string{
		"error":   apiErr.Code,
		"message": apiErr.Message,
	})
}

// decodeJSON reads a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

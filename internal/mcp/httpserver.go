package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionHeader = "Mcp-Session-Id"

// HTTPServer exposes the MCP server over HTTP: one JSON-RPC message per POST
// to /mcp, multiplexed across clients by a session ID header issued on
// initialize.
type HTTPServer struct {
	mcp    *Server
	server *http.Server
	addr   string
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]time.Time
}

// NewHTTPServer creates the HTTP transport around an MCP server.
func NewHTTPServer(addr string, mcp *Server, logger *slog.Logger) *HTTPServer {
	s := &HTTPServer{
		mcp:      mcp,
		addr:     addr,
		logger:   logger,
		sessions: make(map[string]time.Time),
	}

	router := http.NewServeMux()
	router.HandleFunc("/mcp", s.handleMCP)
	router.HandleFunc("/healthz", s.handleHealth)

	handler := s.recoveryMiddleware(s.loggingMiddleware(s.requestIDMiddleware(router)))
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP transport", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP transport")
	return s.server.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// handleMCP carries one JSON-RPC message per request. An initialize request
// opens a session and returns its ID in the session header; every other
// request must present a known session ID.
func (s *HTTPServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxMessageSize))
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorMessage(nil, ParseError, "invalid JSON-RPC message", nil))
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if msg.Method == "initialize" {
		sessionID = uuid.New().String()
		s.mu.Lock()
		s.sessions[sessionID] = time.Now()
		s.mu.Unlock()
		w.Header().Set(sessionHeader, sessionID)
	} else if !s.validSession(sessionID) {
		s.writeJSON(w, http.StatusNotFound, NewErrorMessage(msg.Id, InvalidRequest, "unknown or missing session", nil))
		return
	}

	response := s.mcp.HandleMessage(r.Context(), &msg)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) validSession(id string) bool {
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		s.logger.Error("failed to write response", "error", err.Error())
	}
}

// requestIDMiddleware adds a unique request ID to each request
func (s *HTTPServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request with timing
func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

// recoveryMiddleware converts panics into 500 responses
func (s *HTTPServer) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", "panic", fmt.Sprintf("%v", rec))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

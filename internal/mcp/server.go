// Package mcp implements the Model Context Protocol server surface: JSON-RPC
// 2.0 framing over stdio or HTTP, the tool registry, and the tool handlers
// that bridge MCP calls to the ADT client.
package mcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sapadt/internal/adt"
)

// ToolHandler handles one tool call and returns the uniform result envelope.
// Returned errors are protocol-level only; tool failures are reported inside
// the envelope with IsError set.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (*CallToolResult, error)

// Server represents the MCP server
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *slog.Logger
	version string
	tools   map[string]ToolHandler

	client  *adt.Client
	rawMode bool
}

// NewServer creates an MCP server over the given ADT client. rawMode selects
// verbatim payload pass-through for every transformer-bearing tool.
func NewServer(version string, client *adt.Client, rawMode bool, logger *slog.Logger) *Server {
	server := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		tools:   make(map[string]ToolHandler),
		client:  client,
		rawMode: rawMode,
	}

	server.RegisterTools()

	return server
}

// Start starts the MCP server and begins processing messages
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", "version", s.version)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading message", "error", err.Error())

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, fmt.Sprintf("Failed to parse message: %v", err))
			}
			continue
		}

		response := s.HandleMessage(context.Background(), msg)

		// Notifications don't generate responses
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}

// HandleMessage processes one incoming message and returns the response, or
// nil for notifications. Shared by the stdio and HTTP transports.
func (s *Server) HandleMessage(ctx context.Context, msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(ctx, msg)
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(ctx context.Context, msg *Message) *Message {
	s.logger.Debug("handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "ping":
		return NewResultMessage(msg.Id, map[string]interface{}{})
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.GetToolDefinitions(),
		})
	case "tools/call":
		return s.handleCallTool(ctx, msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("unknown notification", "method", msg.Method)
	}
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "sapadt",
			"version": s.version,
		},
	})
}

// handleCallTool executes a tool. Tool-level failures stay inside the result
// envelope; only malformed requests become JSON-RPC errors.
func (s *Server) handleCallTool(ctx context.Context, msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: missing tool name", nil)
	}

	args, ok := params["arguments"].(map[string]interface{})
	if !ok {
		args = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Unknown tool: %s", toolName), nil)
	}

	s.logger.Info("calling tool", "tool", toolName)

	result, err := handler(ctx, args)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}

	return NewResultMessage(msg.Id, result)
}

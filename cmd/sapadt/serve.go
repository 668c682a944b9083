package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sapadt/internal/adt"
	"sapadt/internal/logging"
	"sapadt/internal/mcp"
	"sapadt/internal/version"
)

var (
	serveHTTP bool
	httpAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server.

By default the server communicates over stdio using JSON-RPC 2.0 and is
typically launched by an MCP client, not directly by users. With --http it
listens on an HTTP address instead, multiplexing clients by session ID.

Output mode: when SAP_RAW_MODE=true, tools return the unmodified ADT payload
instead of normalized JSON.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve over HTTP instead of stdio")
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (default from SAP_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries protocol traffic on the stdio transport, so logs go to
	// stderr on both transports.
	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: logging.Format(cfg.Logging.Format),
		Output: os.Stderr,
	})

	logger.Info("starting sapadt",
		"version", version.Version,
		"system", cfg.BaseURL,
		"client", cfg.Client,
		"rawMode", cfg.RawMode,
	)

	client := adt.NewClient(cfg, adt.NewSession(), logger)
	server := mcp.NewServer(version.Version, client, cfg.RawMode, logger)

	if !serveHTTP {
		return server.Start()
	}

	addr := httpAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}
	httpServer := mcp.NewHTTPServer(addr, server, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-done:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}

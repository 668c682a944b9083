package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sapadt/internal/adt"
	"sapadt/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify connectivity and credentials against the configured SAP system",
	Long: `Run a minimal repository search against the configured system to verify
that the URL, credentials, and client number work before wiring the server
into an MCP client.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: logging.Format(cfg.Logging.Format),
		Output: os.Stderr,
	})

	client := adt.NewClient(cfg, adt.NewSession(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if _, err := client.SearchObjects(ctx, "S*", 1); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	fmt.Printf("OK: %s (client %s) reachable in %s\n", cfg.BaseURL, cfg.Client, time.Since(start).Round(time.Millisecond))
	return nil
}

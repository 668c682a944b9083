package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sapadt/internal/adt"
	"sapadt/internal/config"
	"sapadt/internal/version"
)

var (
	configFile  string
	destFile    string
	destination string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "sapadt",
	Short: "MCP server for SAP ABAP Development Tools",
	Long: `sapadt exposes read-only retrieval tools against a SAP system's ADT
(ABAP Development Tools) REST interface over the Model Context Protocol,
so MCP clients can read programs, classes, tables, packages, and DDIC
metadata directly from the system.

Connection settings come from the environment (SAP_URL, SAP_USERNAME,
SAP_PASSWORD, SAP_CLIENT) or a config file; see 'sapadt serve --help'.`,
	Version: version.Info(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

func init() {
	rootCmd.SetVersionTemplate("sapadt version {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (optional; environment overrides it)")
	rootCmd.PersistentFlags().StringVar(&destFile, "destinations", "", "Path to a destinations.yaml with named SAP systems")
	rootCmd.PersistentFlags().StringVar(&destination, "destination", "", "Destination name to use from the destinations file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves the effective configuration from flags, environment,
// and the optional destinations file. Missing required fields surface as a
// CONFIG_MISSING error naming all of them.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		var cfgErr *config.ConfigError
		if !errors.As(err, &cfgErr) {
			return nil, err
		}
		// A destinations file may supply the missing required fields; defer
		// validation to it in that case.
		if destFile == "" || destination == "" {
			return nil, adt.NewError(adt.ConfigMissing, err.Error(), err)
		}
	}

	if destFile != "" && destination != "" {
		cfg, err = config.LoadDestination(destFile, destination, cfg)
		if err != nil {
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) {
				return nil, adt.NewError(adt.ConfigMissing, err.Error(), err)
			}
			return nil, err
		}
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	return cfg, nil
}

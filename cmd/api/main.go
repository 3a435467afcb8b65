// Package main provides the rateanalysis binary: the HTTP API server and its
// migration commands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"rateanalysis/internal/config"
	"rateanalysis/internal/logging"
)

// configFile is set by the --config flag.
var configFile string

// @title Rate Analysis API
// @version 1.0
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rateanalysis",
	Short: "Rate analysis API server",
	Long: `rateanalysis serves the ra-parameters and work-estimate-leads REST resources
backed by PostgreSQL. Running it without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (environment variables take precedence)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads the configuration and installs the process logger.
func bootstrap() (*config.AppConfig, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("load timezone: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// Command sdsclean validates and cleans school roster CSV directories.
//
// Subcommands:
//
//	validate  run validation over a directory and write cleaned files
//	generate  produce a sample roster directory
//	serve     expose validation over HTTP
//	history   list persisted run history
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sdstools/sdsclean/internal/config"
	"github.com/sdstools/sdsclean/internal/logging"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	root := &cobra.Command{
		Use:           "sdsclean",
		Short:         "Validate and clean school roster CSV directories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newValidateCmd(cfg),
		newGenerateCmd(),
		newServeCmd(cfg),
		newRunsCmd(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

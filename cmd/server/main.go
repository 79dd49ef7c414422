// Package main implements the entry point for the taskboard API server,
// an in-memory task and tag tracker with statistics and a contribution
// calendar.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}

// newRootCmd builds the taskboard command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Taskboard API server",
		Long:         "taskboard serves a JSON API for tasks, tags, statistics and a completion calendar.",
		SilenceUsage: true,
		Version:      version,
	}

	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

// newServeCmd builds the serve subcommand, which runs the HTTP server until
// the command context is cancelled.
func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default: .env in the working directory when present)")
	return cmd
}

type serveOptions struct {
	configFile string
	envFile    string
}

// runServe loads configuration, sets up logging, wires the application and
// serves until ctx is done.
func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadAppConfig(opts.configFile, opts.envFile)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

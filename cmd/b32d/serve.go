package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atlas-128/convertDecimaltoBase32/internal/launcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the worker group serving the converter",
	Long: `Start the supervisor, which re-executes this binary once per worker.
Each worker binds its own SO_REUSEPORT listener on the shared address and
serves the configured application. A worker that fails to start takes the
whole group down with a non-zero exit.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "bind host (overrides config)")
	serveCmd.Flags().Int("port", 0, "bind port (overrides config)")
	serveCmd.Flags().Int("workers", 0, "worker process count (overrides config)")
	serveCmd.Flags().String("app", "", "application name to serve (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("host") {
		cfg.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Server.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("app") {
		cfg.Server.App, _ = cmd.Flags().GetString("app")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if launcher.IsWorker() {
		log := newLogger(cfg, fmt.Sprintf("worker-%d", launcher.WorkerIndex()))
		return launcher.RunWorker(ctx, cfg, log)
	}

	log := newLogger(cfg, "supervisor")
	return launcher.NewSupervisor(cfg, log).Run(ctx)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/atlas-128/convertDecimaltoBase32/internal/config"
	"github.com/atlas-128/convertDecimaltoBase32/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "b32d",
	Short: "Base32 converter service: serve, package and run",
	Long: `b32d serves the base32/decimal converter under a multi-worker
supervisor, renders and builds the container image that packages it, and
manages the resulting containers on the local engine.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./b32d.yaml, /etc/b32d/b32d.yaml)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func newLogger(cfg *config.Config, component string) *logging.Logger {
	return logging.New(component, logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
}

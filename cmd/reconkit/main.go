package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/araultra/reconkit/pkg/config"
	"github.com/araultra/reconkit/pkg/log"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is the layered configuration every command reads. It is resolved
	// once, before any RunE fires.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reconkit",
	Short: "Provision and audit a recon engagement's tool suite",
	Long: `Reconkit keeps a recon tool suite reconciled with the project that uses it.

audit compares what is installed (Homebrew, the kit virtualenv, the kit bin
directory) against what the project references and its manifest requires, and
prints a sectioned report. bootstrap installs the catalog into ~/.reconkit.
doctor checks that this machine can do both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if logFormat != "" {
			loaded.Log.Format = logFormat
		}
		if err := log.Init(log.Config{
			Level:  log.LogLevel(loaded.Log.Level),
			Format: loaded.Log.Format,
		}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.reconkit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, progress, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

func main() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/cmd/hoard/commands"
	"github.com/hoardsec/hoard/internal/config"
	"github.com/hoardsec/hoard/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "hoard",
		Short: "Local secret cache - fetch once, serve from the OS keyring",
		Long: `hoard caches secrets fetched from external commands (cloud CLIs,
password managers, ad-hoc scripts) in your operating system's credential
store, re-running the source command only when the cached value is
missing, expired, or a refresh is forced.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(debug, noColor)

			if configFile == "" {
				path, err := config.DefaultPath()
				if err != nil {
					return err
				}
				configFile = path
			}

			cfg.Path = configFile
			cfg.Logger = logger
			return cfg.Load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: <user config dir>/hoard/hoard.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewInspectCommand(cfg),
		commands.NewEditCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}

// Package cli defines the Cobra command tree for the dashboard binary.
// This file contains the root command and its persistent flags.
package cli

import (
	"fmt"
	"os"

	"github.com/jrsteele09/callwa-dashboard/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev" // set via ldflags at build time

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	ephemeral  bool
	verbose    bool

	cfg config.Config // loaded before any command runs
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the dashboard server.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Call to WhatsApp automation dashboard",
		Long: `Dashboard signs a dealer-owner in to the automation backend and shows
recent calls, the product catalog and the automation settings, either in the
browser (serve) or directly on the command line.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.GetEnv(), opts.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep the session in memory instead of the data folder")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newLogoutCmd(opts))
	rootCmd.AddCommand(newWhoAmICmd(opts))
	rootCmd.AddCommand(newCallsCmd(opts))
	rootCmd.AddCommand(newProductsCmd(opts))
	rootCmd.AddCommand(newSettingsCmd(opts))

	return rootCmd
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"content-migrator/internal/config"
	"content-migrator/internal/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "cm-consolidate",
		Short: "Consolidate duplicate content models into canonical content types",
		Long: `cm-consolidate merges content models that share a canonical uid.

Field mappings of every instance are unioned, modular blocks are deduplicated
and ordered by type, and identifiers are normalized to the target naming
rules. Running it on its own output yields the same output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(
		newConsolidateCmd(flags),
		newNormalizeUIDCmd(flags),
		newSignatureCmd(),
	)

	return rootCmd
}

// load reads the configuration and builds a logger writing to cmd's error stream.
func (f *globalFlags) load(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadFile(f.configPath)
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewWithOutput(cmd.ErrOrStderr())

	level := cfg.Log.Level
	if f.logLevel != "" {
		level = f.logLevel
	}

	log.SetLevel(level)

	return cfg, log, nil
}

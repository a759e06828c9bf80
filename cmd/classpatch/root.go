package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"classpatch/internal/config"
	"classpatch/internal/logging"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	services   []string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "classpatch",
		Short:         "Bytecode patch engine",
		Long:          "classpatch turns declarative patches into transformer units and applies them to JVM class files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (YAML or TOML)")
	root.PersistentFlags().StringSliceVar(&a.services, "services", nil, "services present in the host, overrides config")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScanCmd(a), newApplyCmd(a), newCheckCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("services") {
		cfg.Services = a.services
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}

	logger, err := logging.New(level, false)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

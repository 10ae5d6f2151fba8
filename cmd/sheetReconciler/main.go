// Command sheetReconciler is the command-line shell of the reconciler: it serves the
// web form and runs the comparisons and the mapping copier on local workbooks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/sheetReconciler/helper"

	"github.com/spf13/cobra"
)

// app carries the resolved configuration and logger to the commands.
type app struct {
	configFile string
	config     *Config
	logger     *slog.Logger
	closeLog   func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sheetReconciler",
		Short: "Reconcile two spreadsheets by a key column",
		Long: `sheetReconciler compares two workbooks by a key column, extracts the rows
present in only one of them and copies existing mappings into the rows that need them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(a.configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.config = config
			a.logger, a.closeLog = helper.NewLogger(helper.LoggerConfig{
				Level:  helper.ParseLogLevel(config.LogLevel),
				Writer: cmd.ErrOrStderr(),
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: ./.sheetReconciler.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("workspace", "", "Workspace directory for local storage (default: .)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newDiffCmd(a),
		newCopyMappingsCmd(a),
	)

	return rootCmd
}

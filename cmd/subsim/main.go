package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/logging"
)

var (
	dataDir  string
	logLevel string
	logger   = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "subsim",
		Short:         "submarine hydrodynamics simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".subsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newSweepCmd(),
		newScenarioCmd(),
		newMonteCarloCmd(),
		newTuneCmd(),
		newConfigCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newAnalyzeCmd(),
	)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ttft-sim",
	Short: "Discrete-event TTFT simulator for monolithic vs disaggregated LLM serving",
	Long: `ttft-sim estimates Time-To-First-Token latency distributions for
large-model serving under two resource architectures: a monolithic pool that
holds one accelerator for a request's entire lifetime, and a disaggregated
design where prefill and decode draw from independent capacity-limited pools.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

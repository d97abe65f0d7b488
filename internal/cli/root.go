package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nglogan",
	Short: "Nginx ui access log latency report generator",
	Long: `nglogan processes nginx ui access logs into a per-URL latency report.
It picks the most recent dated log in the log directory, aggregates request
timings per URL and renders the top URLs by total time into an HTML report.`,
	RunE:         runRoot,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&configPath, "config", "config.json", "Path to config file")
}

func runRoot(cmd *cobra.Command, args []string) error {
	return run(configPath)
}

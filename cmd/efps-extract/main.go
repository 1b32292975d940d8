package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	app := &application{}

	rootCmd := &cobra.Command{
		Use:     "efps-extract",
		Short:   "Extract eFPS benchmark tables from colored log output into CSV",
		Version: version,
		Long: `efps-extract reads benchmark log output (for example a CI job log) from
standard input, finds the eFPS result tables printed after each
"Testing with sanity@<version>" marker, and writes one row per benchmark
to benchmark_results.csv in the current directory.`,
		Example: `  # Convert a saved log
  efps-extract < efps.log

  # Read a zstd compressed log and write JSON instead
  efps-extract --input efps.log.zst --format json --output results.json`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		RunE:              app.runExtract,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&app.configFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")

	// Extraction flags
	rootCmd.Flags().StringP("input", "i", "", "input log file (default is standard input, zstd is detected)")
	rootCmd.Flags().StringP("output", "o", "", "output file path (default is ./benchmark_results.csv)")
	rootCmd.Flags().StringP("format", "f", "", "output format: csv, json (default is csv)")

	app.bindFlags(rootCmd)

	return rootCmd
}

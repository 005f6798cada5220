// =============================================================================
// EDI to CSV Converter - Root Command
// =============================================================================
//
// The root command all subcommands attach to:
//
//   ediconv
//   ├── process  (convert EDI exports to flat CSV/XLSX)
//   ├── validate (check configuration without processing)
//   └── version
//
// Persistent flags: --config (main configuration file), --verbose (forces
// debug logging regardless of the configured level).
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the path to the main configuration file (--config).
var cfgFile string

// verbose forces debug logging (--verbose).
var verbose bool

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ediconv",
	Short: "EDI to CSV Converter - Convert provider EDIFACT COMTFR exports into clean flat files",
	Long: `EDI to CSV Converter transforms raw provider EDI files (EDIFACT COMTFR,
insurance commission reporting) into the 37-column flat CSV layout expected
by the downstream reconciliation system.

Key features:
  - Tolerant single-pass COMTFR segment decoder (one row per CHD charge line)
  - Per-provider configuration: file matching, encoding, strictness, outputs
  - Optional XLSX rendering for review before hand-off
  - Concurrent batch processing with automatic input archival

Example usage:
  ediconv process                      # Process all files in the input directory
  ediconv process --single --file x.edi
  ediconv validate                     # Check configuration without processing`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Force debug logging",
	)
}

// =============================================================================
// EDI to CSV Converter - Validate Command
// =============================================================================
//
// Loads the main and provider configurations and reports what would be used,
// without touching any input files. Useful after editing configs or when
// onboarding a new provider.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration files without processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		mainCfg, err := config.LoadMainConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("main config: %w", err)
		}

		fmt.Println("Main configuration OK")
		fmt.Printf("  input_dir:        %s\n", mainCfg.InputDir)
		fmt.Printf("  output_dir:       %s\n", mainCfg.OutputDir)
		fmt.Printf("  configs_dir:      %s\n", mainCfg.ConfigsDir)
		fmt.Printf("  max_concurrency:  %d\n", mainCfg.MaxConcurrency)

		providers, err := config.LoadProviderConfigs(mainCfg.ConfigsDir)
		if err != nil {
			return fmt.Errorf("provider configs: %w", err)
		}
		if len(providers) == 0 {
			fmt.Println("Warning: no provider configurations found; nothing will match")
			return nil
		}

		fmt.Printf("%d provider configuration(s) OK\n", len(providers))
		for code, p := range providers {
			fmt.Printf("  %-10s %s  patterns=[%s]  formats=[%s]  strict=%v\n",
				code, p.ProviderName,
				strings.Join(p.FileMatchingPatterns, ", "),
				strings.Join(p.Output.Formats, ", "),
				p.StrictMode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

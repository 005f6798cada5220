// =============================================================================
// EDI to CSV Converter - Process Command
// =============================================================================
//
// The main command: discover raw EDI exports, route each to its provider
// configuration, decode concurrently, write CSV/XLSX outputs and archive the
// processed inputs.
//
// FLAGS:
//   --dry-run    : decode and report, write nothing
//   --single     : process one file only (with --file)
//   --file       : path of the file for --single
//   --provider   : restrict processing to one provider code
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/config"
	"github.com/brokerops/EDI-to-CSV-conversion/internal/converter"
	"github.com/brokerops/EDI-to-CSV-conversion/internal/logging"
	"github.com/brokerops/EDI-to-CSV-conversion/pkg/utils"
)

var (
	dryRun       bool
	singleFile   bool
	filePath     string
	providerCode string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process EDI exports and convert them to flat CSV",
	Long: `The process command scans the input directory for raw EDI exports,
matches each file to a provider configuration, decodes the EDIFACT COMTFR
interchange and writes the 37-column flat file output.

Files are processed concurrently and independently: one file's failure does
not affect the others. On success the input is moved to the input archive;
on error it stays in place and the failure is written to an error log in the
output directory. A file that decodes to zero charge records is reported as
a warning, not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decode and report without writing output files")
	processCmd.Flags().BoolVar(&singleFile, "single", false, "Process only a single file (use with --file)")
	processCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to process (used with --single)")
	processCmd.Flags().StringVar(&providerCode, "provider", "", "Process only files for a specific provider code")
}

func runProcess(ctx context.Context) error {
	startTime := time.Now()

	mainCfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level := mainCfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.Setup(level, mainCfg.LogFormat)

	providers, err := config.LoadProviderConfigs(mainCfg.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load provider configs: %w", err)
	}
	if providerCode != "" {
		p, ok := providers[providerCode]
		if !ok {
			return fmt.Errorf("unknown provider code %q", providerCode)
		}
		providers = map[string]*config.ProviderConfig{providerCode: p}
	}
	logger.Info("configuration loaded", slog.Int("providers", len(providers)))

	fm := utils.NewFileManager(mainCfg.InputDir, mainCfg.OutputDir, mainCfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No EDI files found in the input directory.")
		return nil
	}
	logger.Info("processing files", slog.Int("count", len(inputFiles)), slog.Bool("dry_run", dryRun))

	results := converter.RunBatch(ctx, inputFiles, providers, mainCfg, logger, dryRun)

	var successCount, emptyCount, errorCount, totalRecords int
	var errorLines []string
	for _, result := range results {
		switch {
		case result.Error != nil:
			errorCount++
			errorLines = append(errorLines, fmt.Sprintf("%s: %v", filepath.Base(result.FilePath), result.Error))
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		case result.Stats.RecordsDecoded == 0:
			emptyCount++
			fmt.Printf("  ! %s: no billable records found\n", filepath.Base(result.FilePath))
		default:
			successCount++
			totalRecords += result.Stats.RecordsDecoded
			for _, out := range result.OutputFiles {
				fmt.Printf("  ✓ %s -> %s\n", filepath.Base(result.FilePath), filepath.Base(out))
			}
			if dryRun {
				fmt.Printf("  ✓ %s: %d record(s) (dry run)\n", filepath.Base(result.FilePath), result.Stats.RecordsDecoded)
			}
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Converted:       %d (%d records)\n", successCount, totalRecords)
	fmt.Printf("Empty:           %d\n", emptyCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	if errorCount > 0 && !dryRun {
		if logPath, err := fm.WriteErrorLog(errorLines); err == nil {
			fmt.Printf("\nErrors logged to %s\n", logPath)
		} else {
			logger.Error("failed to write error log", slog.Any("error", err))
		}
	}

	if errorCount > 0 && !mainCfg.ContinueOnError {
		return fmt.Errorf("%d file(s) failed", errorCount)
	}
	return nil
}

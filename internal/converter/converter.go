// =============================================================================
// EDI to CSV Converter - Converter Module
// =============================================================================
//
// Per-file conversion pipeline:
//   1. Read the raw export with encoding tolerance
//   2. Decode the interchange into flat records
//   3. Render the configured output formats (CSV, XLSX)
//   4. Archive the processed input
//
// A decode that yields zero records is a success with a warning ("no billable
// records found"), not a failure: the decoder never rejects a document, and
// an empty charge file is a real occurrence. Each file is processed in its
// own goroutine by the batch runner; a Converter holds no shared state.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/config"
	"github.com/brokerops/EDI-to-CSV-conversion/internal/edifact"
	"github.com/brokerops/EDI-to-CSV-conversion/internal/flatfile"
	"github.com/brokerops/EDI-to-CSV-conversion/internal/xlsxwriter"
	"github.com/brokerops/EDI-to-CSV-conversion/pkg/utils"
)

// Result is the outcome of processing a single input file.
type Result struct {
	// FilePath is the processed input file.
	FilePath string

	// OutputFiles are the generated output paths; empty on failure or when
	// the file decoded to zero records.
	OutputFiles []string

	// Success reports whether processing completed. Zero decoded records
	// still count as success.
	Success bool

	// Error is set when processing failed.
	Error error

	// Stats carries processing counters.
	Stats ProcessingStats
}

// ProcessingStats carries counters for the run summary.
type ProcessingStats struct {
	RecordsDecoded int
	Anomalies      int
	ProcessingTime time.Duration
}

// Converter processes one input file against one provider configuration.
type Converter struct {
	inputPath string
	provider  *config.ProviderConfig
	main      *config.MainConfig
	fm        *utils.FileManager
	logger    *slog.Logger

	// DryRun decodes without writing outputs or archiving.
	DryRun bool
}

// New creates a Converter for one input file.
func New(inputPath string, provider *config.ProviderConfig, main *config.MainConfig, logger *slog.Logger) *Converter {
	return &Converter{
		inputPath: inputPath,
		provider:  provider,
		main:      main,
		fm:        utils.NewFileManager(main.InputDir, main.OutputDir, main.InputArchiveDir),
		logger:    logger.With(slog.String("file", filepath.Base(inputPath)), slog.String("provider", provider.ProviderCode)),
	}
}

// Run executes the pipeline for this file. The context is consulted between
// stages so a cancelled batch stops promptly.
func (c *Converter) Run(ctx context.Context) Result {
	start := time.Now()
	result := Result{FilePath: c.inputPath}

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	text, err := readInterchange(c.inputPath, c.provider.Encoding)
	if err != nil {
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	decoder := edifact.Decoder{Strict: c.provider.StrictMode, Logger: c.logger}
	records, anomalies := decoder.Decode(text)
	result.Stats.RecordsDecoded = len(records)
	result.Stats.Anomalies = len(anomalies)

	if len(anomalies) > 0 {
		c.logger.Warn("decode anomalies observed", slog.Int("count", len(anomalies)))
	}

	if len(records) == 0 {
		c.logger.Warn("no billable records found; check that the file is a valid COMTFR export")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}
	c.logger.Info("decoded interchange", slog.Int("records", len(records)))

	if c.DryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	for _, format := range c.provider.Output.Formats {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		outPath := filepath.Join(c.main.OutputDir, utils.OutputName(c.main.OutputNameFormat, c.provider.ProviderCode, format))
		switch format {
		case "csv":
			err = flatfile.WriteFile(outPath, records)
		case "xlsx":
			err = xlsxwriter.WriteFile(outPath, c.provider.Output.SheetName, records)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return fail(err)
		}
		result.OutputFiles = append(result.OutputFiles, outPath)
	}

	if _, err := c.fm.ArchiveInput(c.inputPath); err != nil {
		return fail(err)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// readInterchange reads the raw export and returns text ready for decoding.
// Legacy single-byte encodings are transcoded; UTF-8 input has invalid byte
// sequences dropped rather than failing, matching the tolerance of the
// upstream exports.
func readInterchange(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	switch strings.ToLower(encoding) {
	case "windows-1252":
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to transcode %s: %w", encoding, err)
		}
		return string(decoded), nil
	case "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to transcode %s: %w", encoding, err)
		}
		return string(decoded), nil
	default:
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

// =============================================================================
// EDI to CSV Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   ediconv process       - Convert all EDI exports in the input directory
//   ediconv validate      - Validate configuration files without processing
//   ediconv version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/               : CLI command definitions (Cobra)
//   - internal/edifact   : the COMTFR segment decoder (pure, no I/O)
//   - internal/converter : per-file pipeline and batch runner
//   - internal/config    : main + per-provider YAML configuration
//   - internal/flatfile  : 37-column header-less CSV writer
//   - internal/xlsxwriter: optional XLSX rendering
//   - pkg/utils          : file discovery, naming, archival
//
// =============================================================================

package main

import (
	"github.com/brokerops/EDI-to-CSV-conversion/cmd"
)

func main() {
	cmd.Execute()
}

// =============================================================================
// EDI to CSV Converter - Flat File Writer
// =============================================================================
//
// Renders decoded records as the downstream flat file: a header-less CSV with
// exactly 37 columns per row, in CHD-encounter order. Positions are the
// contract; nothing is added, reordered or trimmed here.
//
// =============================================================================

package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/edifact"
)

// Write renders records to w as header-less CSV rows.
func Write(w io.Writer, records []edifact.Record) error {
	cw := csv.NewWriter(w)
	for i, record := range records {
		if err := cw.Write(record.Slice()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile renders records to a new file at path. An existing file is
// truncated.
func WriteFile(path string, records []edifact.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

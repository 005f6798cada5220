// =============================================================================
// EDI to CSV Converter - XLSX Writer
// =============================================================================
//
// Optional spreadsheet rendering of the decoded records. Layout is identical
// to the flat file (37 columns, no header row); the workbook exists so the
// output can be reviewed in Excel before the CSV is handed downstream.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/edifact"
)

// DefaultSheetName is used when the provider configuration does not name one.
const DefaultSheetName = "Records"

// WriteFile renders records into a new XLSX workbook at path, one record per
// row starting at A1.
func WriteFile(path, sheetName string, records []edifact.Record) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell for row %d: %w", i+1, err)
		}
		row := record.Slice()
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

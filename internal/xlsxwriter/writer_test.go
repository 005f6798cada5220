package xlsxwriter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/edifact"
)

func TestWriteFile(t *testing.T) {
	records := edifact.Decode("UNB+X+Y+SENDER+0099+2401011200+REF123'UNH+1'CHD+R:10:GBP'CHD+I:20:GBP'")
	require.Len(t, records, 2)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteFile(path, "Commission", records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Commission")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first, err := f.GetCellValue("Commission", "A1")
	require.NoError(t, err)
	assert.Equal(t, "REF123", first)

	trailer, err := f.GetCellValue("Commission", "AK2")
	require.NoError(t, err)
	assert.Equal(t, "EORM", trailer)
}

func TestWriteFileDefaultSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteFile(path, "", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())
}

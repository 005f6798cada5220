package flatfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerops/EDI-to-CSV-conversion/internal/edifact"
)

func TestWriteNoHeaderRow(t *testing.T) {
	records := edifact.Decode("UNH+1'CHD+R:10:GBP'")
	require.Len(t, records, 1)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], ",1,"), "first column (control ref) empty, second is batch seq")
	assert.Equal(t, edifact.RecordWidth, len(strings.Split(lines[0], ",")))
}

func TestWritePreservesQualifierSpacing(t *testing.T) {
	records := edifact.Decode("UNH+1'CHD+R  :10:GBP'")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	// encoding/csv quotes fields with leading/trailing spaces only when they
	// contain the delimiter; "R  " must survive verbatim.
	assert.Contains(t, buf.String(), "R  ,10,GBP")
}

func TestWriteEmptyRecordSet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteFile(t *testing.T) {
	records := edifact.Decode("UNH+1'CHD+R:10:GBP'CHD+R:20:GBP'")
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteFile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
}

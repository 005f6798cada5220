package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "input_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("UNH+1'"), 0o644))
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)
	touch(t, filepath.Join(fm.InputDir, "a.edi"))
	touch(t, filepath.Join(fm.InputDir, "b.TXT"))
	touch(t, filepath.Join(fm.InputDir, "c.dat"))
	touch(t, filepath.Join(fm.InputDir, "ignore.csv"))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)

	require.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "ignore.csv")
	}
}

func TestDiscoverInputFilesRecursesSubdirectories(t *testing.T) {
	fm := newTestManager(t)
	sub := filepath.Join(fm.InputDir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	touch(t, filepath.Join(sub, "deep.edi"))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Contains(t, files[0], "deep.edi")
}

func TestOutputName(t *testing.T) {
	name := OutputName("{provider}_{timestamp}_{uuid}.{ext}", "lg", "csv")

	assert.True(t, strings.HasPrefix(name, "lg_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.NotContains(t, name, "{")
}

func TestOutputNameUnique(t *testing.T) {
	a := OutputName("{uuid}.{ext}", "lg", "csv")
	b := OutputName("{uuid}.{ext}", "lg", "csv")

	assert.NotEqual(t, a, b)
}

func TestArchiveInputMovesFile(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.InputDir, "done.edi")
	touch(t, src)

	dest, err := fm.ArchiveInput(src)
	require.NoError(t, err)

	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "done.edi"), dest)
}

func TestArchiveInputAvoidsCollisions(t *testing.T) {
	fm := newTestManager(t)

	first := filepath.Join(fm.InputDir, "dup.edi")
	touch(t, first)
	firstDest, err := fm.ArchiveInput(first)
	require.NoError(t, err)

	second := filepath.Join(fm.InputDir, "dup.edi")
	touch(t, second)
	secondDest, err := fm.ArchiveInput(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstDest, secondDest)
	assert.FileExists(t, firstDest)
	assert.FileExists(t, secondDest)
}

func TestArchiveInputTimestampSubdirs(t *testing.T) {
	fm := newTestManager(t)
	fm.UseTimestampSubdirs = true
	src := filepath.Join(fm.InputDir, "dated.edi")
	touch(t, src)

	dest, err := fm.ArchiveInput(src)
	require.NoError(t, err)

	rel, err := filepath.Rel(fm.InputArchiveDir, dest)
	require.NoError(t, err)
	assert.Len(t, strings.Split(rel, string(filepath.Separator)), 4, "year/month/day/file")
}

func TestWriteErrorLog(t *testing.T) {
	fm := newTestManager(t)

	path, err := fm.WriteErrorLog([]string{"a.edi: bad envelope", "b.edi: unreadable"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.edi: bad envelope")
	assert.Contains(t, string(data), "b.edi: unreadable")
}

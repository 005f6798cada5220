// =============================================================================
// EDI to CSV Converter - File Manager Utility
// =============================================================================
//
// File operations around the conversion pipeline:
//   - Discovery of raw EDI exports in the input directory
//   - Unique output file naming from the configured format string
//   - Archival of successfully processed inputs
//   - Error log generation
//
// Failed inputs stay where they are; only successfully processed files move
// to the archive.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InputExtensions are the raw EDI export extensions the pipeline picks up.
var InputExtensions = []string{".edi", ".txt", ".dat"}

// FileManager handles file operations for the converter.
type FileManager struct {
	InputDir        string
	OutputDir       string
	InputArchiveDir string

	// UseTimestampSubdirs archives into date-based subdirectories,
	// e.g. input_archive/2024/01/15/file.edi.
	UseTimestampSubdirs bool
}

// NewFileManager creates a FileManager over the configured directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates all managed directories that do not exist yet.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DiscoverInputFiles walks the input directory and returns every file with a
// recognized EDI export extension.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range InputExtensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}
	return files, nil
}

// OutputName expands the configured name format for one output file.
// Supported placeholders: {uuid}, {timestamp}, {provider}, {ext}.
func OutputName(format, providerCode, ext string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{provider}", providerCode)
	name = strings.ReplaceAll(name, "{ext}", ext)
	return name
}

// ArchiveInput moves a processed input file into the archive directory and
// returns its new path. Name collisions get a numeric suffix rather than
// overwriting an earlier archive.
func (fm *FileManager) ArchiveInput(path string) (string, error) {
	dir := fm.InputArchiveDir
	if fm.UseTimestampSubdirs {
		dir = filepath.Join(dir, time.Now().Format("2006/01/02"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(path))
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(path)
		stem := strings.TrimSuffix(filepath.Base(path), ext)
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	if err := moveFile(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return dest, nil
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// WriteErrorLog writes the batch's failure lines to a timestamped log in the
// output directory and returns its path.
func (fm *FileManager) WriteErrorLog(lines []string) (string, error) {
	name := fmt.Sprintf("errors_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(fm.OutputDir, name)

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}
	return path, nil
}

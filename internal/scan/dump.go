package scan

import (
	"fmt"
	"os"
	"strings"
)

// DumpReader reads raw scanner dump files from disk.
type DumpReader struct {
	maxFileSize int64
}

// NewDumpReader creates a dump reader with the specified size constraint.
func NewDumpReader(maxFileSize int64) *DumpReader {
	return &DumpReader{maxFileSize: maxFileSize}
}

// Read returns the full text of a scanner dump file.
func (r *DumpReader) Read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validateDumpFile(path, fileInfo); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read dump file: %w", err)
	}

	return string(data), nil
}

// validateDumpFile performs basic validation on a dump file.
func (r *DumpReader) validateDumpFile(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !IsDumpFile(path) {
		return fmt.Errorf("file is not a scanner dump: %s", path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// IsDumpFile reports whether a filename has a scanner dump extension.
func IsDumpFile(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, extText) || strings.HasSuffix(lower, extBCBP)
}

// IsPDFFile reports whether a filename has a PDF extension.
func IsPDFFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), extPDF)
}

// IsScanFile reports whether a filename is any supported scan source.
func IsScanFile(filename string) bool {
	return IsDumpFile(filename) || IsPDFFile(filename)
}

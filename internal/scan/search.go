package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search discovers scan files (dumps and boarding-pass PDFs) on disk.
type Search struct {
	maxFileSize int64
}

// NewSearch creates a search handler with the specified size constraint.
func NewSearch(maxFileSize int64) *Search {
	return &Search{maxFileSize: maxFileSize}
}

// SearchDirectory walks a directory tree and returns every scan file,
// optionally filtered by a fuzzy filename query.
func (s *Search) SearchDirectory(directory, query string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var files []FileInfo
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsScanFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on stat errors
		}

		if info.Size() == 0 || info.Size() > s.maxFileSize {
			return nil
		}

		if normalizedQuery != "" && !matchesQuery(d.Name(), normalizedQuery) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         d.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format(modifiedTimeLayout),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}

// FindLimited returns at most limit scan files from a directory.
func (s *Search) FindLimited(directory string, limit int) ([]FileInfo, error) {
	files, err := s.SearchDirectory(directory, "")
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// matchesQuery performs fuzzy matching on the filename: substring first, then
// every query word must appear in some filename word.
func matchesQuery(filename, query string) bool {
	name := strings.ToLower(filename)
	if strings.Contains(name, query) {
		return true
	}

	nameWords := splitIntoWords(name)
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range nameWords {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// splitIntoWords splits on the separators that show up in scan filenames.
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}

package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines file access to a configured root directory so tool
// callers cannot read arbitrary paths on the host.
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator for the given root directory. The
// directory does not have to exist yet.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}
	return &PathValidator{root: root}, nil
}

// Root returns the configured root directory.
func (v *PathValidator) Root() string {
	return v.root
}

// ValidatePath checks that a file path resolves inside the root directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Nothing to confine against until the root exists.
	if _, err := os.Stat(v.root); os.IsNotExist(err) {
		return nil
	}

	within, err := v.isWithinRoot(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// ValidateDirectory checks that a directory path resolves inside (or is) the
// root directory.
func (v *PathValidator) ValidateDirectory(dir string) error {
	return v.ValidatePath(dir)
}

// isWithinRoot resolves symlinks on both sides and compares prefixes.
func (v *PathValidator) isWithinRoot(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve root: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate root symlinks: %w", err)
	}

	realPath = filepath.Clean(realPath)
	realRoot = filepath.Clean(realRoot)

	if realPath == realRoot {
		return true, nil
	}
	return strings.HasPrefix(realPath, realRoot+string(filepath.Separator)), nil
}

package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	validator, err := NewPathValidator("/some/root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if validator.Root() != "/some/root" {
		t.Errorf("Root() = %q, want %q", validator.Root(), "/some/root")
	}

	if _, err := NewPathValidator(""); err == nil {
		t.Error("expected error for empty root")
	}
}

func TestValidatePath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	insideFile := filepath.Join(tempDir, "inside.txt")
	if err := os.WriteFile(insideFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	subDir := filepath.Join(tempDir, "nested")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	nestedFile := filepath.Join(subDir, "deep.txt")
	if err := os.WriteFile(nestedFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	otherDir, err := os.MkdirTemp("", "path_validator_other")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(otherDir)

	outsideFile := filepath.Join(otherDir, "outside.txt")
	if err := os.WriteFile(outsideFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{
			name:        "file inside root",
			path:        insideFile,
			expectError: false,
		},
		{
			name:        "nested file inside root",
			path:        nestedFile,
			expectError: false,
		},
		{
			name:        "root itself",
			path:        tempDir,
			expectError: false,
		},
		{
			name:        "file outside root",
			path:        outsideFile,
			expectError: true,
		},
		{
			name:        "traversal out of root",
			path:        filepath.Join(tempDir, "..", filepath.Base(otherDir), "outside.txt"),
			expectError: true,
		},
		{
			name:        "nonexistent path inside root",
			path:        filepath.Join(tempDir, "missing.txt"),
			expectError: false,
		},
		{
			name:        "empty path",
			path:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePath(tt.path)
			if tt.expectError && err == nil {
				t.Errorf("expected error for %q but got none", tt.path)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.path, err)
			}
		})
	}
}

func TestValidatePathSymlinkEscape(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_symlink")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	otherDir, err := os.MkdirTemp("", "path_validator_target")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(otherDir)

	target := filepath.Join(otherDir, "secret.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	link := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	if err := validator.ValidatePath(link); err == nil {
		t.Error("expected symlink escaping the root to be rejected")
	}
}

func TestValidatePathNonexistentRoot(t *testing.T) {
	validator, err := NewPathValidator("/nonexistent/root/for/tests")
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	// Until the root exists there is nothing to confine against.
	if err := validator.ValidatePath("/anywhere/at/all.txt"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_dir")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	subDir := filepath.Join(tempDir, "scans")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	if err := validator.ValidateDirectory(subDir); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validator.ValidateDirectory(os.TempDir()); err == nil {
		t.Error("expected directory outside root to be rejected")
	}
}

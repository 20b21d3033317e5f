// Package testutil provides helper functions for testing plaincheck components
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file under root with the given content, creating
// parent directories as needed, and returns its path
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// CreateSourceTree writes files (relative path -> content) into a fresh
// temporary directory and returns the directory
func CreateSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileExists fails the test if path does not exist
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file %s to exist: %v", path, err)
	}
}

// AssertNoFile fails the test if path exists
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected no file at %s", path)
	}
}

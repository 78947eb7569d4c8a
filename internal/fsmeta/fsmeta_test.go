package fsmeta

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLstatRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, make([]byte, 42), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := Lstat(path)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Size != 42 {
		t.Fatalf("Size = %d, want 42", meta.Size)
	}
	if meta.Mode.IsDir() {
		t.Fatal("a regular file should not report IsDir()")
	}
	if meta.Nlink == 0 {
		t.Fatal("Nlink should never be reported as 0")
	}
}

func TestLstatDirectory(t *testing.T) {
	dir := t.TempDir()
	meta, err := Lstat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !meta.Mode.IsDir() {
		t.Fatal("expected IsDir() for a directory")
	}
}

func TestLstatMissingPath(t *testing.T) {
	if _, err := Lstat(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

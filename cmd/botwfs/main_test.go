package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRequireDirectoryAcceptsRealDirectory(t *testing.T) {
	if err := requireDirectory(t.TempDir()); err != nil {
		t.Errorf("requireDirectory(tempdir) = %v, want nil", err)
	}
}

func TestRequireDirectoryRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	err := requireDirectory(path)
	if err == nil {
		t.Fatalf("requireDirectory(file) = nil, want an error")
	}
	want := "error: " + path + " is not a directory"
	if err.Error() != want {
		t.Errorf("requireDirectory(file) = %q, want %q", err.Error(), want)
	}
}

func TestRequireDirectoryRejectsMissingPath(t *testing.T) {
	if err := requireDirectory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("requireDirectory(missing) = nil, want an error")
	}
}

func TestRunRejectsTooFewArguments(t *testing.T) {
	if err := run([]string{"onlyOneArg"}); err == nil {
		t.Errorf("run(one arg) = nil, want a usage error")
	}
}

func TestRunRejectsNonDirectoryContentRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notADir.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	mountPoint := t.TempDir()

	err := run([]string{file, mountPoint})
	if err == nil {
		t.Fatalf("run() with a non-directory content root = nil, want an error")
	}
	want := "error: " + file + " is not a directory"
	if err.Error() != want {
		t.Errorf("run() error = %q, want %q", err.Error(), want)
	}
}

func TestRunRejectsNonDirectoryWorkDir(t *testing.T) {
	contentDir := t.TempDir()
	mountPoint := t.TempDir()
	workFile := filepath.Join(t.TempDir(), "work.txt")
	if err := os.WriteFile(workFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"-w", workFile, contentDir, mountPoint})
	if err == nil {
		t.Fatalf("run() with a non-directory work dir = nil, want an error")
	}
}

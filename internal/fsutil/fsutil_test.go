package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), DefaultFilePermissions, nil); err != nil {
		t.Fatalf("expected write to succeed, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content: %s", data)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be gone")
	}
}

func TestAtomicWriteFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := AtomicWriteFile(path, []byte("first"), DefaultFilePermissions, nil); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), DefaultFilePermissions, nil); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected overwrite, got: %s", data)
	}
}

func TestEnsureDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bundles")
	if err := EnsureDirectory(path); err != nil {
		t.Fatalf("expected directory creation, got: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", path)
	}

	// Idempotent on existing directories.
	if err := EnsureDirectory(path); err != nil {
		t.Errorf("expected existing directory to be fine, got: %v", err)
	}
}

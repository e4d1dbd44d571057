package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSFilesystem_Stat(t *testing.T) {
	m := NewOSFilesystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := m.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() {
		t.Error("IsDir() = true for a regular file")
	}

	if _, err := m.Stat(filepath.Join(dir, "gone.jpg")); !os.IsNotExist(err) {
		t.Errorf("Stat(missing) error = %v, want not-exist", err)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.jpg", "a.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	supported := func(path string) bool { return strings.HasSuffix(path, ".jpg") }
	paths, err := ListImages(dir, supported)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("ListImages() = %v, want two jpg files", paths)
	}
	if filepath.Base(paths[0]) != "a.jpg" || filepath.Base(paths[1]) != "c.jpg" {
		t.Errorf("ListImages() = %v, want sorted jpg files", paths)
	}

	if _, err := ListImages(filepath.Join(dir, "missing"), supported); err == nil {
		t.Error("ListImages(missing dir) expected error")
	}
}

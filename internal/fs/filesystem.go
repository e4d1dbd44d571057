// Package fs provides the real-filesystem implementations behind the
// small filesystem seams the core depends on.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"iv-go/internal/iv"
)

// OSFilesystem is the real filesystem implementation of iv.Filesystem.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem backed by the os package.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Stat returns file info for the given path.
func (m *OSFilesystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ListImages returns the absolute paths of all regular files directly
// inside dir accepted by the supported predicate, sorted by name. It does
// not recurse.
func ListImages(dir string, supported func(path string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if supported(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Compile-time check that OSFilesystem implements iv.Filesystem interface
var _ iv.Filesystem = (*OSFilesystem)(nil)

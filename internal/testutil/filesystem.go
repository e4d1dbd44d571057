package testutil

import (
	"io/fs"
	"path/filepath"
	"time"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Size        int64
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystem is an in-memory iv.Filesystem for testing.
type MockFilesystem struct {
	files map[string]*MockFile
}

// NewMockFilesystem creates a new mock filesystem.
func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a regular file to the mock filesystem.
func (m *MockFilesystem) AddFile(path string) {
	m.files[path] = &MockFile{
		Size:        1,
		Permissions: 0644,
		ModTime:     time.Now(),
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystem) AddDirectory(path string) {
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     time.Now(),
		IsDirectory: true,
	}
}

func (m *MockFilesystem) Stat(path string) (fs.FileInfo, error) {
	file, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    file.Size,
		mode:    file.Permissions,
		modTime: file.ModTime,
		isDir:   file.IsDirectory,
	}, nil
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return i.size }
func (i *mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *mockFileInfo) ModTime() time.Time { return i.modTime }
func (i *mockFileInfo) IsDir() bool        { return i.isDir }
func (i *mockFileInfo) Sys() any           { return nil }

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"iv-go/internal/iv"
)

// MemoryTrash is an in-memory implementation of the Trash interface.
// Trashed file contents live in process memory and are lost on exit; it
// exists for tests and throwaway sessions where nothing should be left on
// disk.
type MemoryTrash struct {
	mu      sync.Mutex
	entries map[string]memoryEntry // keyed by entry ID
	clock   iv.Clock
	ids     iv.IDGenerator
}

type memoryEntry struct {
	Entry
	data []byte
	mode os.FileMode
}

// NewMemoryTrash creates an empty in-memory trash.
func NewMemoryTrash(clock iv.Clock, ids iv.IDGenerator) *MemoryTrash {
	return &MemoryTrash{
		entries: make(map[string]memoryEntry),
		clock:   clock,
		ids:     ids,
	}
}

// Delete reads the file at path into memory and removes it from disk.
func (t *MemoryTrash) Delete(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	id := t.ids.New()
	basename := filepath.Base(path)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = memoryEntry{
		Entry: Entry{
			ID:           id,
			Basename:     basename,
			OriginalPath: path,
			TrashedName:  id + "-" + basename,
			DeletedAt:    t.clock.Now(),
		},
		data: data,
		mode: info.Mode().Perm(),
	}
	return nil
}

// Undelete writes the most recently trashed file with the given base name
// back to its original path.
func (t *MemoryTrash) Undelete(basename string) (string, error) {
	t.mu.Lock()
	var found *memoryEntry
	for id := range t.entries {
		e := t.entries[id]
		if e.Basename != basename {
			continue
		}
		if found == nil || e.DeletedAt.After(found.DeletedAt) {
			found = &e
		}
	}
	t.mu.Unlock()

	if found == nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "file does not exist in trash"}
	}
	if _, err := os.Stat(found.OriginalPath); err == nil {
		return "", &iv.RestoreError{
			Basename: basename,
			Reason:   fmt.Sprintf("path %s already exists", found.OriginalPath),
		}
	}
	if err := os.WriteFile(found.OriginalPath, found.data, found.mode); err != nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "restoring file", Err: err}
	}

	t.mu.Lock()
	delete(t.entries, found.ID)
	t.mu.Unlock()
	return found.OriginalPath, nil
}

// List returns the trash contents, newest first.
func (t *MemoryTrash) List() ([]Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e.Entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DeletedAt.Equal(entries[j].DeletedAt) {
			return entries[i].DeletedAt.After(entries[j].DeletedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// Len returns the number of trashed files.
func (t *MemoryTrash) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Compile-time check that MemoryTrash implements iv.Trash interface
var _ iv.Trash = (*MemoryTrash)(nil)
var _ Lister = (*MemoryTrash)(nil)

package testutil

import (
	"sync"

	"iv-go/internal/iv"
)

// StubTrash is an iv.Trash that records deletions without touching disk.
type StubTrash struct {
	mu      sync.Mutex
	deleted []string

	// DeleteErr maps a path to the error its deletion returns.
	DeleteErr map[string]error

	// Restorable maps base names to the path Undelete restores them to.
	Restorable map[string]string
}

// NewStubTrash creates an empty trash stub.
func NewStubTrash() *StubTrash {
	return &StubTrash{
		DeleteErr:  make(map[string]error),
		Restorable: make(map[string]string),
	}
}

func (t *StubTrash) Delete(path string) error {
	if err := t.DeleteErr[path]; err != nil {
		return err
	}
	t.mu.Lock()
	t.deleted = append(t.deleted, path)
	t.mu.Unlock()
	return nil
}

func (t *StubTrash) Undelete(basename string) (string, error) {
	path, ok := t.Restorable[basename]
	if !ok {
		return "", &iv.RestoreError{Basename: basename, Reason: "file does not exist in trash"}
	}
	return path, nil
}

// Deleted returns the successfully trashed paths in order.
func (t *StubTrash) Deleted() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string{}, t.deleted...)
}

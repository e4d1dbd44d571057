package trash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"iv-go/internal/iv"
)

// FilesystemTrash is a filesystem-based implementation of the Trash
// interface. It stores trashed files and their bookkeeping under a root
// directory:
//
//	<root>/
//	  files/
//	    <id>-<basename>   (trashed files, prefixed to avoid collisions)
//	  index.db            (SQLite index of trashed files)
type FilesystemTrash struct {
	root     string
	filesDir string
	idx      *index
	clock    iv.Clock
	ids      iv.IDGenerator
}

// NewFilesystemTrash creates a filesystem trash rooted at the given path,
// creating the directory structure and index as needed.
func NewFilesystemTrash(root string, clock iv.Clock, ids iv.IDGenerator) (*FilesystemTrash, error) {
	filesDir := filepath.Join(root, "files")
	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trash directory: %w", err)
	}

	idx, err := openIndex(filepath.Join(root, "index.db"))
	if err != nil {
		return nil, err
	}

	return &FilesystemTrash{
		root:     root,
		filesDir: filesDir,
		idx:      idx,
		clock:    clock,
		ids:      ids,
	}, nil
}

// Delete moves the file at path into the trash and records it in the
// index. Files sharing a base name coexist: each gets a unique stored
// name.
func (t *FilesystemTrash) Delete(path string) error {
	id := t.ids.New()
	basename := filepath.Base(path)
	trashedName := id + "-" + basename
	dest := filepath.Join(t.filesDir, trashedName)

	if err := moveFile(path, dest); err != nil {
		return fmt.Errorf("moving to trash: %w", err)
	}

	entry := Entry{
		ID:           id,
		Basename:     basename,
		OriginalPath: path,
		TrashedName:  trashedName,
		DeletedAt:    t.clock.Now(),
	}
	if err := t.idx.add(entry); err != nil {
		// Best effort: put the file back so disk and index stay in sync.
		moveFile(dest, path)
		return err
	}
	return nil
}

// Undelete restores the most recently trashed file with the given base
// name to its original path. All failure modes come back as a
// *iv.RestoreError.
func (t *FilesystemTrash) Undelete(basename string) (string, error) {
	entry, err := t.idx.latestByBasename(basename)
	if err != nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "trash index unavailable", Err: err}
	}
	if entry == nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "file does not exist in trash"}
	}

	originalDir := filepath.Dir(entry.OriginalPath)
	if info, err := os.Stat(originalDir); err != nil || !info.IsDir() {
		return "", &iv.RestoreError{
			Basename: basename,
			Reason:   fmt.Sprintf("original directory %s is not accessible", originalDir),
		}
	}
	if _, err := os.Stat(entry.OriginalPath); err == nil {
		return "", &iv.RestoreError{
			Basename: basename,
			Reason:   fmt.Sprintf("path %s already exists", entry.OriginalPath),
		}
	}

	stored := filepath.Join(t.filesDir, entry.TrashedName)
	if err := moveFile(stored, entry.OriginalPath); err != nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "restoring file", Err: err}
	}
	if err := t.idx.remove(entry.ID); err != nil {
		return "", &iv.RestoreError{Basename: basename, Reason: "updating trash index", Err: err}
	}
	return entry.OriginalPath, nil
}

// List returns the trash contents, newest first.
func (t *FilesystemTrash) List() ([]Entry, error) {
	return t.idx.list()
}

// Close releases the index database.
func (t *FilesystemTrash) Close() error {
	return t.idx.close()
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename fails (typically because trash and file live on different
// filesystems).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy data: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to close destination: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}
	return nil
}

// Compile-time check that FilesystemTrash implements iv.Trash interface
var _ iv.Trash = (*FilesystemTrash)(nil)
var _ Lister = (*FilesystemTrash)(nil)

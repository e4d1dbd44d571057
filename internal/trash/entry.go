// Package trash provides the trash backends: where deleted images go and
// how they come back.
package trash

import "time"

// Entry describes one trashed file.
type Entry struct {
	// ID is the unique identifier assigned when the file was trashed. It
	// prefixes the stored file name so files sharing a base name never
	// collide inside the trash.
	ID string

	// Basename is the original file name without its directory, the key
	// undelete looks files up by.
	Basename string

	// OriginalPath is the absolute path the file was deleted from and
	// will be restored to.
	OriginalPath string

	// TrashedName is the file name inside the trash storage directory.
	TrashedName string

	// DeletedAt records when the file was trashed.
	DeletedAt time.Time
}

// Lister is implemented by backends that can enumerate their contents,
// newest first.
type Lister interface {
	List() ([]Entry, error)
}

package iv

import "io/fs"

// Filesystem abstracts the stat calls the delete path needs, so tests run
// against an in-memory filesystem.
type Filesystem interface {
	// Stat returns file info for path, or an error satisfying
	// fs.ErrNotExist when the path is gone.
	Stat(path string) (fs.FileInfo, error)
}

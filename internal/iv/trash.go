package iv

// Trash provides an interface for trash storage backends. The transform
// service treats trashed files opaquely: a path leaves the browsed set on
// Delete and is retrievable by its base name on Undelete. Directory layout
// and entry bookkeeping are the backend's concern.
type Trash interface {
	// Delete moves the file at path into trash storage.
	Delete(path string) error

	// Undelete restores the most recently trashed file with the given
	// base name to its original location and returns the restored path.
	// Failures (unknown base name, occupied target, storage errors) are
	// reported as *RestoreError.
	Undelete(basename string) (string, error)
}

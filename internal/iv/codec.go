package iv

// Codec performs the file-level image transformations the commit worker
// delegates to. Implementations rewrite the file in place and are expected
// to do so atomically (the original must survive a failed write).
type Codec interface {
	// RotateFile rotates the image file at path by steps quarter turns
	// clockwise. steps is in [1,3]; a rotation of 0 is never requested.
	RotateFile(path string, steps int) error

	// FlipFile mirrors the image file at path, horizontally when
	// horizontal is true, vertically otherwise.
	FlipFile(path string, horizontal bool) error

	// EditSupported reports whether the file at path has a format this
	// codec can rewrite.
	EditSupported(path string) bool
}

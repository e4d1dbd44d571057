package iv

// Session exposes the browsing state the transform service consults but
// does not own: the displayed path, the full browse list, the marked set,
// and the mode flags.
type Session interface {
	// CurrentPath returns the absolute path of the displayed image, or ""
	// when nothing is displayed.
	CurrentPath() string

	// AllPaths returns the full list of browsed paths.
	AllPaths() []string

	// MarkedPaths returns the externally managed batch selection.
	MarkedPaths() []string

	// ClearMarked empties the marked set. Called by operations that
	// consume the selection destructively.
	ClearMarked()

	// ThumbnailMode reports whether the thumbnail grid is displayed.
	ThumbnailMode() bool

	// ManipulateMode reports whether the manipulate editing mode is open.
	ManipulateMode() bool

	// Quit requests application shutdown.
	Quit()
}

// Manipulator is the manipulate-mode subsystem. When it is active it owns
// the full commit: Finish persists every pending edit, staged rotations and
// flips included.
type Manipulator interface {
	Finish(write bool) error
}

// Settings exposes the read-only flags consulted here. The settings store
// itself lives elsewhere.
type Settings interface {
	// AutosaveImages reports whether staged transformations may be
	// written to disk automatically.
	AutosaveImages() bool
}

// Notifier is the status surface user-facing messages go to.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// NopNotifier is a Notifier that discards all messages. Use in tests.
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}

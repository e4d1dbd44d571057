package iv

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// TransformService coordinates deferred, batchable file transformations
// (rotate, flip) and destructive operations (delete to trash, restore from
// trash) over the session's selection. Rotations and flips are recorded
// against displayed state immediately and written to the underlying files
// later by a background commit pass; see Apply.
type TransformService struct {
	codec    Codec
	trash    Trash
	orienter Orienter
	fs       Filesystem
	session  Session
	settings Settings
	manip    Manipulator // nil when no manipulate subsystem is wired
	notifier Notifier
	logger   Logger

	changes *ChangeSet
	events  *Bus

	mu           sync.Mutex
	cond         *sync.Cond
	applying     bool
	autorotating bool
}

// NewTransformService creates a TransformService with the provided
// collaborators. manip may be nil.
func NewTransformService(codec Codec, trash Trash, orienter Orienter, fs Filesystem, session Session, settings Settings, manip Manipulator, notifier Notifier, logger Logger) *TransformService {
	s := &TransformService{
		codec:    codec,
		trash:    trash,
		orienter: orienter,
		fs:       fs,
		session:  session,
		settings: settings,
		manip:    manip,
		notifier: notifier,
		logger:   logger,
		changes:  NewChangeSet(),
		events:   NewBus(),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Events returns the bus the service publishes to.
func (s *TransformService) Events() *Bus {
	return s.events
}

// Changes returns the staged transform ledger. Exposed for status queries;
// mutations belong to the service.
func (s *TransformService) Changes() *ChangeSet {
	return s.changes
}

// Rotate stages a rotation of the current selection by amountSpec quarter
// turns clockwise. amountSpec is user input and may be signed ("-1"). The
// displayed image is notified immediately so the view rotates without
// waiting for the disk commit; in thumbnail mode the commit is started
// right away so the grid refreshes.
func (s *TransformService) Rotate(amountSpec string) {
	steps, err := parseSteps(amountSpec)
	if err != nil {
		s.notifier.Error(err.Error())
		return
	}
	if err := s.transformable(); err != nil {
		s.notifier.Error(err.Error() + " rotate")
		return
	}

	steps = mod4(steps)
	paths := s.targets("Rotated")
	for _, path := range paths {
		s.changes.MergeRotate(path, steps)
	}
	s.logger.Debug("rotation staged", "steps", steps, "files", len(paths))

	if current := s.session.CurrentPath(); current != "" && slices.Contains(paths, current) {
		s.events.Publish(ImageRotated{Steps: steps})
	}
	if s.session.ThumbnailMode() {
		s.Apply()
	}
}

// Flip stages a mirror of the current selection, horizontally when
// horizontal is true, vertically otherwise.
func (s *TransformService) Flip(horizontal bool) {
	if err := s.transformable(); err != nil {
		s.notifier.Error(err.Error() + " flip")
		return
	}

	paths := s.targets("Flipped")
	for _, path := range paths {
		s.changes.MergeFlip(path, horizontal)
	}
	s.logger.Debug("flip staged", "horizontal", horizontal, "files", len(paths))

	if current := s.session.CurrentPath(); current != "" && slices.Contains(paths, current) {
		s.events.Publish(ImageFlipped{Horizontal: horizontal})
	}
	if s.session.ThumbnailMode() {
		s.Apply()
	}
}

// Write flushes staged changes to disk on the user's explicit request.
// When manipulate mode is active the full commit is delegated to that
// subsystem (its write includes any staged rotate/flip) and the local
// ledger is discarded. When quit is set, shutdown is requested only after
// the commit worker has gone idle — quitting must not outrun a write the
// user just asked for.
func (s *TransformService) Write(quit bool) {
	s.notifier.Info("Saving...")

	if s.manip != nil && s.session.ManipulateMode() {
		if err := s.manip.Finish(true); err != nil {
			s.notifier.Error(fmt.Sprintf("Could not write manipulations: %v", err))
		}
		s.changes.Clear()
	} else {
		s.Apply()
	}

	if quit {
		s.Wait()
		s.session.Quit()
		return
	}
	s.notifier.Info("Changes written to disk")
}

// Delete moves all marked images, or the current one, to trash. The marked
// set is consumed (cleared) regardless of outcome. Missing files and
// directories are skipped with a warning; the batch continues past
// individual failures and all problems are reported as one message. A
// PathsChanged event fires even on partial failure so the browser reloads.
func (s *TransformService) Delete() {
	paths := s.targets("Deleted")
	s.session.ClearMarked()

	if len(paths) == 1 && paths[0] == "" {
		s.notifier.Error("No image to delete")
		return
	}

	var problems []string
	for _, path := range paths {
		info, err := s.fs.Stat(path)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("Image %s does not exist", path))
		case info.IsDir():
			problems = append(problems, fmt.Sprintf("Deleting directory %s is not supported", path))
		default:
			if err := s.trash.Delete(path); err != nil {
				problems = append(problems, fmt.Sprintf("Could not delete %s: %v", path, err))
			} else {
				s.logger.Info("file trashed", "path", path)
			}
		}
	}

	if len(problems) > 0 {
		s.notifier.Error(strings.Join(problems, "\n"))
	}
	s.events.Publish(PathsChanged{})
}

// Undelete restores a trashed image by its base name. Failures are
// reported, not propagated.
func (s *TransformService) Undelete(basename string) {
	restored, err := s.trash.Undelete(basename)
	if err != nil {
		s.notifier.Error(fmt.Sprintf("Could not restore %s, %v", basename, err))
		return
	}
	s.logger.Info("file restored", "path", restored)
	s.events.Publish(PathsChanged{})
}

// targets resolves the paths an operation acts on: the marked set when it
// is non-empty, the displayed image otherwise. Acting on the marked set is
// announced with the given action label.
func (s *TransformService) targets(label string) []string {
	marked := s.session.MarkedPaths()
	if len(marked) > 0 {
		if len(marked) == 1 {
			s.notifier.Info(fmt.Sprintf("%s 1 marked image", label))
		} else {
			s.notifier.Info(fmt.Sprintf("%s %d marked images", label, len(marked)))
		}
		return marked
	}
	return []string{s.session.CurrentPath()}
}

// transformable checks whether the current selection may be transformed.
// Operating in thumbnail mode or on marked images cannot be reflected by
// re-rendering the single displayed image, so both require permission to
// write to disk.
func (s *TransformService) transformable() *NotTransformableError {
	if len(s.session.AllPaths()) == 0 {
		return &NotTransformableError{Reason: "No image to"}
	}
	if !s.codec.EditSupported(s.session.CurrentPath()) {
		return &NotTransformableError{Reason: "Filetype not supported for"}
	}
	if !s.settings.AutosaveImages() {
		if s.session.ThumbnailMode() {
			return &NotTransformableError{Reason: `When operating in thumbnail mode "autosave_images" must be enabled for`}
		}
		if len(s.session.MarkedPaths()) > 0 {
			return &NotTransformableError{Reason: `When images are marked "autosave_images" must be enabled for`}
		}
	}
	return nil
}

// parseSteps parses a signed integer amount from user input.
func parseSteps(amountSpec string) (int, error) {
	steps, err := strconv.Atoi(strings.TrimSpace(amountSpec))
	if err != nil {
		return 0, &ParseError{Input: amountSpec}
	}
	return steps, nil
}

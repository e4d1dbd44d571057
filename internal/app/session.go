package app

import (
	"fmt"
	"os"
	"path/filepath"

	"iv-go/internal/fs"
	"iv-go/internal/iv"
)

// CLISession adapts command-line arguments to the iv.Session interface.
// Several paths act as a marked batch; a single file is the displayed
// image; a single directory becomes the browse list with its first image
// displayed.
type CLISession struct {
	current string
	all     []string
	marked  []string
	quit    bool
}

// NewCLISession resolves the raw arguments into a session. supported
// filters directory listings down to editable images.
func NewCLISession(rawPaths []string, supported func(path string) bool) (*CLISession, error) {
	paths := make([]string, 0, len(rawPaths))
	for _, raw := range rawPaths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, fmt.Errorf("resolving path %s: %w", raw, err)
		}
		paths = append(paths, abs)
	}

	s := &CLISession{}
	switch len(paths) {
	case 0:
		// Empty session: operations report "No image to ..." themselves.
	case 1:
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			images, err := fs.ListImages(paths[0], supported)
			if err != nil {
				return nil, err
			}
			s.all = images
			if len(images) > 0 {
				s.current = images[0]
			}
			break
		}
		s.current = paths[0]
		s.all = paths
	default:
		s.current = paths[0]
		s.all = paths
		s.marked = append([]string{}, paths...)
	}
	return s, nil
}

func (s *CLISession) CurrentPath() string { return s.current }

func (s *CLISession) AllPaths() []string { return s.all }

func (s *CLISession) MarkedPaths() []string { return s.marked }

func (s *CLISession) ClearMarked() { s.marked = nil }

// ThumbnailMode is always false: the CLI has no thumbnail grid.
func (s *CLISession) ThumbnailMode() bool { return false }

// ManipulateMode is always false: the CLI has no manipulate subsystem.
func (s *CLISession) ManipulateMode() bool { return false }

// Quit records the shutdown request; the process exits when the command
// returns.
func (s *CLISession) Quit() { s.quit = true }

// QuitRequested reports whether Quit was called.
func (s *CLISession) QuitRequested() bool { return s.quit }

// Compile-time check that CLISession implements iv.Session interface
var _ iv.Session = (*CLISession)(nil)

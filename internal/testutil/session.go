package testutil

import "sync"

// StubSession is a scriptable iv.Session.
type StubSession struct {
	mu         sync.Mutex
	Current    string
	All        []string
	Marked     []string
	Thumbnail  bool
	Manipulate bool
	quitCalls  int
}

func (s *StubSession) CurrentPath() string { return s.Current }

func (s *StubSession) AllPaths() []string { return s.All }

func (s *StubSession) MarkedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Marked
}

func (s *StubSession) ClearMarked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = nil
}

func (s *StubSession) ThumbnailMode() bool { return s.Thumbnail }

func (s *StubSession) ManipulateMode() bool { return s.Manipulate }

func (s *StubSession) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quitCalls++
}

// QuitCalls returns how many times Quit was requested.
func (s *StubSession) QuitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quitCalls
}

// StubSettings is a fixed iv.Settings.
type StubSettings struct {
	Autosave bool
}

func (s *StubSettings) AutosaveImages() bool { return s.Autosave }

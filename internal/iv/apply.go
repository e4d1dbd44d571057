package iv

import (
	"fmt"
	"sort"
	"strings"
)

// Apply schedules a commit of all staged changes to disk. At most one
// commit pass runs at a time: a call while a pass is in flight is a no-op,
// not queued — the running worker drains the ledger in a loop, so merges
// arriving mid-pass are committed without another call. With autosave
// disabled the entire ledger is discarded without touching any file; the
// pending visual changes then live only in memory.
func (s *TransformService) Apply() {
	s.mu.Lock()
	if s.applying {
		s.mu.Unlock()
		return
	}
	if !s.settings.AutosaveImages() {
		s.mu.Unlock()
		s.changes.Clear()
		s.logger.Debug("autosave disabled, staged changes discarded")
		return
	}
	s.applying = true
	s.mu.Unlock()

	go s.commitLoop()
}

// commitLoop drains the staged ledger and writes each batch through the
// codec. It keeps draining until a batch comes back empty, so changes
// staged while a batch was being written are picked up immediately.
func (s *TransformService) commitLoop() {
	defer func() {
		s.mu.Lock()
		s.applying = false
		s.cond.Broadcast()
		s.mu.Unlock()
	}()

	for {
		batch := s.changes.Drain()
		if len(batch) == 0 {
			return
		}
		s.commitBatch(batch)
	}
}

// commitBatch writes one drained batch. Per file the order is fixed:
// rotation, then horizontal flip, then vertical flip; zero components
// perform no I/O. A codec failure on one file does not abort the batch —
// failures are collected and reported as one message, the same policy
// delete uses.
func (s *TransformService) commitBatch(batch map[string]PendingChange) {
	paths := make([]string, 0, len(batch))
	for path := range batch {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var written []string
	var problems []string
	for _, path := range paths {
		if err := s.commitFile(path, batch[path]); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		written = append(written, path)
	}

	if len(problems) > 0 {
		s.notifier.Error(strings.Join(problems, "\n"))
	}
	if len(written) > 0 {
		s.logger.Info("changes written", "files", len(written))
		s.events.Publish(AppliedToFile{Paths: written})
	}
}

// commitFile applies one staged change to its file.
func (s *TransformService) commitFile(path string, change PendingChange) error {
	if change.Rotation != 0 {
		if err := s.codec.RotateFile(path, change.Rotation); err != nil {
			return fmt.Errorf("rotating %s: %w", path, err)
		}
	}
	if change.FlipHorizontal {
		if err := s.codec.FlipFile(path, true); err != nil {
			return fmt.Errorf("flipping %s: %w", path, err)
		}
	}
	if change.FlipVertical {
		if err := s.codec.FlipFile(path, false); err != nil {
			return fmt.Errorf("flipping %s: %w", path, err)
		}
	}
	return nil
}

// Busy reports whether a commit pass or an autorotate pass is in flight.
func (s *TransformService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applying || s.autorotating
}

// Wait blocks until no commit or autorotate pass is in flight.
func (s *TransformService) Wait() {
	s.mu.Lock()
	for s.applying || s.autorotating {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

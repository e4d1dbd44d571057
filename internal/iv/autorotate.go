package iv

import "fmt"

// Orienter is the orientation-detection engine autorotate drives. It
// inspects each file's recorded orientation and rewrites the ones whose
// pixel data disagrees with it.
type Orienter interface {
	// Normalize processes the given files and returns how many were
	// rotated. Files without orientation metadata are left alone and not
	// counted.
	Normalize(paths []string) (int, error)
}

// Autorotate runs the orientation engine over the whole current browse
// list — not just the selection — on a background pass. Unlike rotate and
// flip this bypasses the staged ledger entirely: files are rewritten
// immediately and the rewrite is not reversible. A call while a pass is in
// flight is dropped.
func (s *TransformService) Autorotate() {
	s.mu.Lock()
	if s.autorotating {
		s.mu.Unlock()
		return
	}
	s.autorotating = true
	s.mu.Unlock()

	paths := s.session.AllPaths()
	go func() {
		count, err := s.orienter.Normalize(paths)

		s.mu.Lock()
		s.autorotating = false
		s.cond.Broadcast()
		s.mu.Unlock()

		if err != nil {
			s.notifier.Error(fmt.Sprintf("Autorotate failed: %v", err))
			return
		}
		s.logger.Info("autorotate completed", "rotated", count)
		s.notifier.Info(fmt.Sprintf("Completed autorotate, %d files rotated", count))
	}()
}

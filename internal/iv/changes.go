package iv

import "sync"

// PendingChange is a staged, not-yet-written transformation for one file.
// Rotation counts quarter turns clockwise and is always reduced mod 4; the
// flip fields are parity flags (an odd number of flips on an axis is true).
type PendingChange struct {
	Rotation       int
	FlipHorizontal bool
	FlipVertical   bool
}

// Zero reports whether the change would perform no work.
func (c PendingChange) Zero() bool {
	return c.Rotation == 0 && !c.FlipHorizontal && !c.FlipVertical
}

// ChangeSet is the in-memory ledger of staged transformations, keyed by
// absolute file path. It is shared between the foreground flow (merges) and
// the commit worker (Drain), so every access goes through the mutex.
//
// Staged changes are volatile: they are lost when the process exits before
// a commit. That is intentional — durability of staged state is not a goal.
type ChangeSet struct {
	mu      sync.Mutex
	entries map[string]PendingChange
}

// NewChangeSet creates an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{entries: make(map[string]PendingChange)}
}

// MergeRotate adds steps quarter turns to the staged rotation for path,
// creating the entry if absent. Negative steps rotate counter-clockwise.
func (cs *ChangeSet) MergeRotate(path string, steps int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	entry := cs.entries[path]
	entry.Rotation = mod4(entry.Rotation + steps)
	cs.entries[path] = entry
}

// MergeFlip toggles the staged flip parity for path on the given axis,
// creating the entry if absent.
func (cs *ChangeSet) MergeFlip(path string, horizontal bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	entry := cs.entries[path]
	if horizontal {
		entry.FlipHorizontal = !entry.FlipHorizontal
	} else {
		entry.FlipVertical = !entry.FlipVertical
	}
	cs.entries[path] = entry
}

// Drain atomically removes and returns all staged entries. A merge arriving
// after Drain starts a fresh entry for its path — invisible to the pass
// working off the drained batch, pending for the next one. This
// snapshot-and-remove discipline (never a destructive clear racing with
// merges) is what guarantees no staged change is ever silently lost.
func (cs *ChangeSet) Drain() map[string]PendingChange {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := cs.entries
	cs.entries = make(map[string]PendingChange)
	return out
}

// Clear discards all staged entries without writing anything.
func (cs *ChangeSet) Clear() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.entries = make(map[string]PendingChange)
}

// Empty reports whether no changes are staged.
func (cs *ChangeSet) Empty() bool {
	return cs.Len() == 0
}

// Len returns the number of staged entries.
func (cs *ChangeSet) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.entries)
}

// Get returns the staged change for path, if any.
func (cs *ChangeSet) Get(path string) (PendingChange, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	entry, ok := cs.entries[path]
	return entry, ok
}

// mod4 reduces quarter turns into [0,3], handling negative input.
func mod4(steps int) int {
	return ((steps % 4) + 4) % 4
}

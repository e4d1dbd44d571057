package testutil

import "sync"

// RecordingNotifier collects notices so tests can assert on the exact
// user-facing messages. Safe for concurrent use: the commit worker
// reports from its own goroutine.
type RecordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *RecordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// Infos returns a copy of the recorded notices in order.
func (n *RecordingNotifier) Infos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.infos...)
}

// Errors returns a copy of the recorded problems in order.
func (n *RecordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.errors...)
}

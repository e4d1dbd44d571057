package testutil

import "sync"

// StubOrienter is an iv.Orienter returning canned results.
type StubOrienter struct {
	mu    sync.Mutex
	got   [][]string
	Count int
	Err   error
}

func (o *StubOrienter) Normalize(paths []string) (int, error) {
	o.mu.Lock()
	o.got = append(o.got, append([]string{}, paths...))
	o.mu.Unlock()
	return o.Count, o.Err
}

// Normalized returns the path lists passed to Normalize, in order.
func (o *StubOrienter) Normalized() [][]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.got
}

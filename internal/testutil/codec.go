package testutil

import "sync"

// CodecCall records one file rewrite the codec was asked to perform.
type CodecCall struct {
	Op         string // "rotate" or "flip"
	Path       string
	Steps      int
	Horizontal bool
}

// RecordingCodec is an iv.Codec that records calls instead of touching
// files. Individual paths can be made to fail, and an optional gate lets
// tests hold a commit pass open while they stage more changes.
type RecordingCodec struct {
	mu    sync.Mutex
	calls []CodecCall

	// FailWith maps a path to the error every rewrite of it returns.
	FailWith map[string]error

	// Unsupported contains paths EditSupported rejects.
	Unsupported map[string]bool

	// Gate, when non-nil, blocks each rewrite until the channel is closed
	// or a value is sent.
	Gate chan struct{}
}

// NewRecordingCodec creates a codec that accepts every path.
func NewRecordingCodec() *RecordingCodec {
	return &RecordingCodec{
		FailWith:    make(map[string]error),
		Unsupported: make(map[string]bool),
	}
}

func (c *RecordingCodec) RotateFile(path string, steps int) error {
	c.wait()
	c.mu.Lock()
	c.calls = append(c.calls, CodecCall{Op: "rotate", Path: path, Steps: steps})
	c.mu.Unlock()
	return c.FailWith[path]
}

func (c *RecordingCodec) FlipFile(path string, horizontal bool) error {
	c.wait()
	c.mu.Lock()
	c.calls = append(c.calls, CodecCall{Op: "flip", Path: path, Horizontal: horizontal})
	c.mu.Unlock()
	return c.FailWith[path]
}

func (c *RecordingCodec) EditSupported(path string) bool {
	return path != "" && !c.Unsupported[path]
}

// Calls returns a copy of the recorded calls in order.
func (c *RecordingCodec) Calls() []CodecCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CodecCall{}, c.calls...)
}

func (c *RecordingCodec) wait() {
	if c.Gate != nil {
		<-c.Gate
	}
}

package iv

import "sync"

// Event is a notification published by the transform service. The UI layer
// subscribes to the service's Bus; the service never calls into the UI
// directly.
type Event interface {
	isEvent()
}

// ImageRotated is published when the displayed image's staged rotation
// changed, so the live view can rotate without waiting for the disk commit.
type ImageRotated struct {
	Steps int // quarter turns clockwise, already reduced mod 4
}

// ImageFlipped is published when the displayed image's staged flip changed.
type ImageFlipped struct {
	Horizontal bool
}

// AppliedToFile is published after a commit pass wrote staged changes to
// disk. Paths lists the files that were successfully written.
type AppliedToFile struct {
	Paths []string
}

// PathsChanged is published when the set of browsable paths changed
// (a file was trashed or restored) so the browser reloads its listing.
type PathsChanged struct{}

func (ImageRotated) isEvent()  {}
func (ImageFlipped) isEvent()  {}
func (AppliedToFile) isEvent() {}
func (PathsChanged) isEvent()  {}

// Bus is a minimal typed event bus. Subscribers are invoked synchronously
// on the publishing goroutine, which may be the commit worker — handlers
// must not block.
type Bus struct {
	mu   sync.Mutex
	subs []func(Event)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to receive all future events.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers e to all subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}

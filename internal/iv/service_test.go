package iv_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"iv-go/internal/iv"
	"iv-go/internal/testutil"
)

// newService wires a TransformService from fakes without a manipulator.
func newService(codec iv.Codec, trash iv.Trash, orienter iv.Orienter, fs iv.Filesystem, session iv.Session, settings iv.Settings, notifier iv.Notifier) *iv.TransformService {
	return iv.NewTransformService(codec, trash, orienter, fs, session, settings, nil, notifier, iv.NewNopLogger())
}

// eventLog collects published events; handlers run on the commit worker
// too, so access is locked.
type eventLog struct {
	mu     sync.Mutex
	events []iv.Event
}

func collectEvents(svc *iv.TransformService) *eventLog {
	log := &eventLog{}
	svc.Events().Subscribe(func(e iv.Event) {
		log.mu.Lock()
		log.events = append(log.events, e)
		log.mu.Unlock()
	})
	return log
}

func (l *eventLog) all() []iv.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]iv.Event{}, l.events...)
}

func (l *eventLog) count(match func(iv.Event) bool) int {
	n := 0
	for _, e := range l.all() {
		if match(e) {
			n++
		}
	}
	return n
}

func TestTransformService_Rotate(t *testing.T) {
	t.Run("stages rotation and notifies the view", func(t *testing.T) {
		codec := testutil.NewRecordingCodec()
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		svc := newService(codec, testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})
		events := collectEvents(svc)

		svc.Rotate("1")

		change, ok := svc.Changes().Get("/a.jpg")
		if !ok || change.Rotation != 1 {
			t.Errorf("staged change = %+v, want rotation 1", change)
		}
		if len(codec.Calls()) != 0 {
			t.Errorf("codec called %d times, want 0 before apply", len(codec.Calls()))
		}
		rotated := events.count(func(e iv.Event) bool {
			r, ok := e.(iv.ImageRotated)
			return ok && r.Steps == 1
		})
		if rotated != 1 {
			t.Errorf("ImageRotated events = %d, want 1", rotated)
		}
	})

	t.Run("repeated rotations merge mod 4", func(t *testing.T) {
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})

		svc.Rotate("1")
		svc.Rotate("5")

		change, _ := svc.Changes().Get("/a.jpg")
		if change.Rotation != 2 {
			t.Errorf("staged rotation = %d, want 2", change.Rotation)
		}
		if svc.Changes().Len() != 1 {
			t.Errorf("staged entries = %d, want 1", svc.Changes().Len())
		}
	})

	t.Run("rotates all marked images and announces the batch", func(t *testing.T) {
		session := &testutil.StubSession{
			Current: "/a.jpg",
			All:     []string{"/a.jpg", "/b.jpg", "/c.jpg"},
			Marked:  []string{"/b.jpg", "/c.jpg"},
		}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)
		events := collectEvents(svc)

		svc.Rotate("1")

		for _, path := range []string{"/b.jpg", "/c.jpg"} {
			if change, ok := svc.Changes().Get(path); !ok || change.Rotation != 1 {
				t.Errorf("staged change for %s = %+v, want rotation 1", path, change)
			}
		}
		if _, ok := svc.Changes().Get("/a.jpg"); ok {
			t.Error("displayed image staged although not marked")
		}
		if got, want := notifier.Infos()[0], "Rotated 2 marked images"; got != want {
			t.Errorf("notice = %q, want %q", got, want)
		}
		// The displayed image was not part of the batch, so the view keeps
		// showing it unchanged.
		if n := events.count(func(e iv.Event) bool { _, ok := e.(iv.ImageRotated); return ok }); n != 0 {
			t.Errorf("ImageRotated events = %d, want 0", n)
		}
	})

	t.Run("rejects malformed amounts", func(t *testing.T) {
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)

		svc.Rotate("abc")

		if svc.Changes().Len() != 0 {
			t.Errorf("staged entries = %d, want 0", svc.Changes().Len())
		}
		want := `Could not convert "abc" to a number`
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})
}

func TestTransformService_Flip(t *testing.T) {
	t.Run("stages flip and notifies the view", func(t *testing.T) {
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})
		events := collectEvents(svc)

		svc.Flip(true)

		change, _ := svc.Changes().Get("/a.jpg")
		if !change.FlipHorizontal {
			t.Errorf("staged change = %+v, want horizontal flip", change)
		}
		flipped := events.count(func(e iv.Event) bool {
			f, ok := e.(iv.ImageFlipped)
			return ok && f.Horizontal
		})
		if flipped != 1 {
			t.Errorf("ImageFlipped events = %d, want 1", flipped)
		}
	})

	t.Run("second flip on the same axis cancels the first", func(t *testing.T) {
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})

		svc.Flip(false)
		svc.Flip(false)

		change, _ := svc.Changes().Get("/a.jpg")
		if change.FlipVertical {
			t.Errorf("staged change = %+v, want vertical flip cancelled", change)
		}
	})
}

func TestTransformService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		session *testutil.StubSession
		codec   func() *testutil.RecordingCodec
		autosave bool
		action  func(*iv.TransformService)
		want    string
	}{
		{
			name:    "no images loaded",
			session: &testutil.StubSession{},
			autosave: true,
			action:  func(s *iv.TransformService) { s.Rotate("1") },
			want:    "No image to rotate",
		},
		{
			name:    "unsupported filetype",
			session: &testutil.StubSession{Current: "/a.svg", All: []string{"/a.svg"}},
			codec: func() *testutil.RecordingCodec {
				c := testutil.NewRecordingCodec()
				c.Unsupported["/a.svg"] = true
				return c
			},
			autosave: true,
			action:  func(s *iv.TransformService) { s.Flip(true) },
			want:    "Filetype not supported for flip",
		},
		{
			name: "thumbnail mode needs autosave",
			session: &testutil.StubSession{
				Current: "/a.jpg", All: []string{"/a.jpg"}, Thumbnail: true,
			},
			action: func(s *iv.TransformService) { s.Rotate("1") },
			want:   `When operating in thumbnail mode "autosave_images" must be enabled for rotate`,
		},
		{
			name: "marked images need autosave",
			session: &testutil.StubSession{
				Current: "/a.jpg", All: []string{"/a.jpg", "/b.jpg"}, Marked: []string{"/b.jpg"},
			},
			action: func(s *iv.TransformService) { s.Flip(false) },
			want:   `When images are marked "autosave_images" must be enabled for flip`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := testutil.NewRecordingCodec()
			if tt.codec != nil {
				codec = tt.codec()
			}
			notifier := testutil.NewRecordingNotifier()
			svc := newService(codec, testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), tt.session, &testutil.StubSettings{Autosave: tt.autosave}, notifier)

			tt.action(svc)

			if got := notifier.Errors(); len(got) != 1 || got[0] != tt.want {
				t.Errorf("errors = %v, want [%q]", got, tt.want)
			}
			if svc.Changes().Len() != 0 {
				t.Errorf("staged entries = %d, want 0", svc.Changes().Len())
			}
		})
	}
}

func TestTransformService_Delete(t *testing.T) {
	t.Run("trashes the displayed image", func(t *testing.T) {
		trash := testutil.NewStubTrash()
		fs := testutil.NewMockFilesystem()
		fs.AddFile("/a.jpg")
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		svc := newService(testutil.NewRecordingCodec(), trash, &testutil.StubOrienter{}, fs, session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})
		events := collectEvents(svc)

		svc.Delete()

		if got := trash.Deleted(); len(got) != 1 || got[0] != "/a.jpg" {
			t.Errorf("trashed = %v, want [/a.jpg]", got)
		}
		if n := events.count(func(e iv.Event) bool { _, ok := e.(iv.PathsChanged); return ok }); n != 1 {
			t.Errorf("PathsChanged events = %d, want 1", n)
		}
	})

	t.Run("continues past missing files and directories", func(t *testing.T) {
		trash := testutil.NewStubTrash()
		fs := testutil.NewMockFilesystem()
		fs.AddFile("/a.jpg")
		fs.AddDirectory("/photos")
		session := &testutil.StubSession{
			Current: "/a.jpg",
			All:     []string{"/a.jpg"},
			Marked:  []string{"/a.jpg", "/gone.jpg", "/photos"},
		}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), trash, &testutil.StubOrienter{}, fs, session, &testutil.StubSettings{Autosave: true}, notifier)
		events := collectEvents(svc)

		svc.Delete()

		if got := trash.Deleted(); len(got) != 1 || got[0] != "/a.jpg" {
			t.Errorf("trashed = %v, want [/a.jpg]", got)
		}
		want := "Image /gone.jpg does not exist\nDeleting directory /photos is not supported"
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
		if len(session.MarkedPaths()) != 0 {
			t.Error("marked set not cleared")
		}
		// The browser still reloads: one file really left the listing.
		if n := events.count(func(e iv.Event) bool { _, ok := e.(iv.PathsChanged); return ok }); n != 1 {
			t.Errorf("PathsChanged events = %d, want 1", n)
		}
	})

	t.Run("reports a trash failure per file", func(t *testing.T) {
		trash := testutil.NewStubTrash()
		trash.DeleteErr["/a.jpg"] = errors.New("disk full")
		fs := testutil.NewMockFilesystem()
		fs.AddFile("/a.jpg")
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), trash, &testutil.StubOrienter{}, fs, session, &testutil.StubSettings{Autosave: true}, notifier)

		svc.Delete()

		want := "Could not delete /a.jpg: disk full"
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})

	t.Run("refuses an empty selection", func(t *testing.T) {
		notifier := testutil.NewRecordingNotifier()
		session := &testutil.StubSession{}
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)
		events := collectEvents(svc)

		svc.Delete()

		if got := notifier.Errors(); len(got) != 1 || got[0] != "No image to delete" {
			t.Errorf("errors = %v, want [No image to delete]", got)
		}
		if len(events.all()) != 0 {
			t.Errorf("events = %v, want none", events.all())
		}
	})
}

func TestTransformService_Undelete(t *testing.T) {
	t.Run("restores by base name", func(t *testing.T) {
		trash := testutil.NewStubTrash()
		trash.Restorable["a.jpg"] = "/photos/a.jpg"
		session := &testutil.StubSession{}
		svc := newService(testutil.NewRecordingCodec(), trash, &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, iv.NopNotifier{})
		events := collectEvents(svc)

		svc.Undelete("a.jpg")

		if n := events.count(func(e iv.Event) bool { _, ok := e.(iv.PathsChanged); return ok }); n != 1 {
			t.Errorf("PathsChanged events = %d, want 1", n)
		}
	})

	t.Run("reports unknown base names", func(t *testing.T) {
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), &testutil.StubSession{}, &testutil.StubSettings{Autosave: true}, notifier)
		events := collectEvents(svc)

		svc.Undelete("gone.jpg")

		want := "Could not restore gone.jpg, file does not exist in trash"
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
		if len(events.all()) != 0 {
			t.Errorf("events = %v, want none", events.all())
		}
	})
}

func TestTransformService_Write(t *testing.T) {
	t.Run("commits staged changes on request", func(t *testing.T) {
		codec := testutil.NewRecordingCodec()
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(codec, testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)

		svc.Rotate("1")
		svc.Write(false)
		svc.Wait()

		calls := codec.Calls()
		if len(calls) != 1 || calls[0].Op != "rotate" || calls[0].Path != "/a.jpg" {
			t.Errorf("codec calls = %+v, want one rotate of /a.jpg", calls)
		}
		infos := notifier.Infos()
		if len(infos) < 2 || infos[0] != "Saving..." || infos[len(infos)-1] != "Changes written to disk" {
			t.Errorf("notices = %v, want Saving... then Changes written to disk", infos)
		}
	})

	t.Run("delegates to the manipulator in manipulate mode", func(t *testing.T) {
		codec := testutil.NewRecordingCodec()
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}, Manipulate: true}
		manip := &stubManipulator{}
		svc := iv.NewTransformService(codec, testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, manip, iv.NopNotifier{}, iv.NewNopLogger())

		svc.Rotate("1")
		svc.Write(false)
		svc.Wait()

		if got := manip.finishes(); len(got) != 1 || !got[0] {
			t.Errorf("manipulator finishes = %v, want [true]", got)
		}
		if len(codec.Calls()) != 0 {
			t.Errorf("codec calls = %+v, want none", codec.Calls())
		}
		if svc.Changes().Len() != 0 {
			t.Error("staged changes not discarded after manipulate write")
		}
	})

	t.Run("reports a failed manipulate write", func(t *testing.T) {
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}, Manipulate: true}
		manip := &stubManipulator{err: errors.New("no backend")}
		notifier := testutil.NewRecordingNotifier()
		svc := iv.NewTransformService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), &testutil.StubOrienter{}, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, manip, notifier, iv.NewNopLogger())

		svc.Write(false)

		want := "Could not write manipulations: no backend"
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})
}

type stubManipulator struct {
	mu   sync.Mutex
	done []bool
	err  error
}

func (m *stubManipulator) Finish(write bool) error {
	m.mu.Lock()
	m.done = append(m.done, write)
	m.mu.Unlock()
	return m.err
}

func (m *stubManipulator) finishes() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool{}, m.done...)
}

func TestTransformService_Autorotate(t *testing.T) {
	t.Run("reports how many files were rotated", func(t *testing.T) {
		orienter := &testutil.StubOrienter{Count: 3}
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg", "/b.jpg", "/c.jpg"}}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), orienter, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)

		svc.Autorotate()
		svc.Wait()

		if got := orienter.Normalized(); len(got) != 1 || len(got[0]) != 3 {
			t.Fatalf("Normalize called with %v, want the full browse list once", got)
		}
		want := "Completed autorotate, 3 files rotated"
		if got := notifier.Infos(); len(got) != 1 || got[0] != want {
			t.Errorf("notices = %v, want [%q]", got, want)
		}
	})

	t.Run("reports failures", func(t *testing.T) {
		orienter := &testutil.StubOrienter{Err: fmt.Errorf("rotating /a.jpg: truncated")}
		session := &testutil.StubSession{Current: "/a.jpg", All: []string{"/a.jpg"}}
		notifier := testutil.NewRecordingNotifier()
		svc := newService(testutil.NewRecordingCodec(), testutil.NewStubTrash(), orienter, testutil.NewMockFilesystem(), session, &testutil.StubSettings{Autosave: true}, notifier)

		svc.Autorotate()
		svc.Wait()

		want := "Autorotate failed: rotating /a.jpg: truncated"
		if got := notifier.Errors(); len(got) != 1 || got[0] != want {
			t.Errorf("errors = %v, want [%q]", got, want)
		}
	})
}

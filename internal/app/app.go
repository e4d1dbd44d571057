// Package app is the application layer between the CLI and the transform
// service: it constructs all dependencies from config and exposes the
// high-level operations the commands call.
package app

import (
	"fmt"
	"os"
	"time"

	"iv-go/internal/codec"
	"iv-go/internal/config"
	"iv-go/internal/fs"
	"iv-go/internal/iv"
	"iv-go/internal/orient"
	"iv-go/internal/trash"
)

// IVApp wires a TransformService for one CLI invocation. The caller must
// call Close when done; Close waits for any background commit to finish.
type IVApp struct {
	cfg     *config.Config
	trash   iv.Trash
	session *CLISession
	service *iv.TransformService
	logFile *os.File
}

// NewIVApp creates a fully wired IVApp from the given config.
// operation identifies the CLI command being run (e.g. "Rotate", "Delete").
// rawPaths are the image arguments; several paths act as a marked batch.
func NewIVApp(cfg *config.Config, operation string, rawPaths []string) (*IVApp, error) {
	cdc := codec.NewImagingCodec()
	clock := iv.RealClock{}
	ids := iv.UUIDGenerator{}

	tr, err := trash.NewTrashFromConfig(cfg.Trash, clock, ids)
	if err != nil {
		return nil, fmt.Errorf("creating trash: %w", err)
	}

	session, err := NewCLISession(rawPaths, cdc.EditSupported)
	if err != nil {
		return nil, fmt.Errorf("resolving paths: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapted := &slogAdapter{l: logger}

	notifier := NewConsoleNotifier(os.Stdout, os.Stderr)
	orienter := orient.NewExifOrienter(cdc, adapted)
	svc := iv.NewTransformService(cdc, tr, orienter, fs.NewOSFilesystem(), session, cfg, nil, notifier, adapted)

	// The CLI has no view to refresh; record what a UI would react to.
	svc.Events().Subscribe(func(e iv.Event) {
		adapted.Debug("event published", "operation", operation, "event", fmt.Sprintf("%T", e))
	})

	return &IVApp{
		cfg:     cfg,
		trash:   tr,
		session: session,
		service: svc,
		logFile: logFile,
	}, nil
}

// Rotate stages a rotation of the selection and flushes it to disk.
func (a *IVApp) Rotate(amountSpec string) {
	a.service.Rotate(amountSpec)
	a.flush()
}

// Flip stages a mirror of the selection and flushes it to disk.
func (a *IVApp) Flip(horizontal bool) {
	a.service.Flip(horizontal)
	a.flush()
}

// Write flushes any staged changes on explicit request.
func (a *IVApp) Write(quit bool) {
	a.service.Write(quit)
	a.service.Wait()
}

// Delete moves the selection to trash.
func (a *IVApp) Delete() {
	a.service.Delete()
}

// Undelete restores a trashed image by base name.
func (a *IVApp) Undelete(basename string) {
	a.service.Undelete(basename)
}

// Autorotate normalizes orientation across the whole browse list and
// waits for the pass to complete.
func (a *IVApp) Autorotate() {
	a.service.Autorotate()
	a.service.Wait()
}

// Paths returns the resolved browse list.
func (a *IVApp) Paths() []string {
	return a.session.AllPaths()
}

// TrashList returns the trash contents, newest first.
func (a *IVApp) TrashList() ([]trash.Entry, error) {
	lister, ok := a.trash.(trash.Lister)
	if !ok {
		return nil, fmt.Errorf("trash backend does not support listing")
	}
	return lister.List()
}

// flush commits staged changes and waits for the worker. A one-shot
// process has no later moment to write.
func (a *IVApp) flush() {
	a.service.Apply()
	a.service.Wait()
}

// Close waits for background work and releases resources.
func (a *IVApp) Close() error {
	a.service.Wait()

	var firstErr error
	if closer, ok := a.trash.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = fmt.Errorf("closing trash: %w", err)
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}

package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
)

type implWatcher struct {
	dir     string
	run     RunFunc
	settle  time.Duration
	logger  logger.Logger
	watcher *fsnotify.Watcher
	// pending holds at most one queued run request
	pending chan struct{}
	wg      sync.WaitGroup
}

// Start monitors the directory until ctx is cancelled. Files already waiting
// are processed by an initial run.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.dir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(media.SupportedFormats(), ", "))

	w.wg.Add(1)
	go w.runner(ctx)
	w.request()

	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing run to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// CREATE marks a new file (a move into the directory shows up as one
			// too); WRITE means a copy is still in progress
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			if event.Has(fsnotify.Create) {
				w.logger.Info(ctx, "New media detected: %s", filepath.Base(event.Name))
			}
			// wait until writes settle so files are fully written
			timer.Reset(w.settle)

		case <-timer.C:
			w.request()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// request queues a run. Requests made while one is already queued collapse
// into it.
func (w *implWatcher) request() {
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

// runner executes queued runs one at a time.
func (w *implWatcher) runner(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
			if err := w.run(ctx); err != nil {
				w.logger.Error(ctx, "Run failed: %v", err)
			}
		}
	}
}

// isMediaFile checks if the file has a supported media extension
func (w *implWatcher) isMediaFile(path string) bool {
	return media.IsSupported(filepath.Base(path))
}

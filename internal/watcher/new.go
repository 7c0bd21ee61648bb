package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

// New creates a Watcher on dir. A burst of create events is collapsed into
// one run once no new event arrived for settle.
func New(dir string, run RunFunc, settle time.Duration, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	return &implWatcher{
		dir:     dir,
		run:     run,
		settle:  settle,
		logger:  log,
		watcher: watcher,
		pending: make(chan struct{}, 1),
	}, nil
}

package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// RunFunc runs one batch over the incoming area.
type RunFunc func(ctx context.Context) error

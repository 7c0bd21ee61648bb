package batch

import (
	"path/filepath"

	"github.com/nguyentantai21042004/transcribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/naming"
	"github.com/nguyentantai21042004/transcribe-flow/internal/processor"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
)

// LockFile is the name of the run lock inside a workspace.
const LockFile = "run.lock"

type implCoordinator struct {
	store     state.Store
	fetcher   fetcher.Fetcher
	processor processor.Processor
	logger    logger.Logger
	lockPath  string
	// identify names a downloaded file inside incoming
	identify func(name string) string
}

// New creates a Coordinator. fetch may be nil when remote fetching is not
// available; a run with a URL then reports a fetch failure.
func New(store state.Store, fetch fetcher.Fetcher, proc processor.Processor, log logger.Logger) Coordinator {
	return &implCoordinator{
		store:     store,
		fetcher:   fetch,
		processor: proc,
		logger:    log,
		lockPath:  filepath.Join(store.Dirs().Root, LockFile),
		identify:  naming.WithToken,
	}
}

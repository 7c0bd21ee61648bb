package batch

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// ErrRunInProgress is returned when another run holds the workspace lock.
var ErrRunInProgress = errors.New("another run is already in progress for this workspace")

// Request describes one run invocation.
type Request struct {
	// RemoteURL is fetched once before the run when set.
	RemoteURL string
	Language  config.Language
}

// Coordinator drives the stage executor over every candidate of a run.
type Coordinator interface {
	// RunBatch processes the fetched file (if any) and everything in
	// incoming. Per-item failures are reported on the summary; the error is
	// only for problems that prevent the run from starting.
	RunBatch(ctx context.Context, req Request) (*domain.BatchSummary, error)
}

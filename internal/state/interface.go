package state

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// Store is the directory-backed lifecycle store. A file sits in exactly one
// of the incoming or done areas; its metadata record carries the status.
type Store interface {
	Dirs() Dirs

	// Incoming returns every regular file currently in the incoming area.
	Incoming(ctx context.Context) ([]domain.MediaItem, error)
	// Stage copies a local file into incoming under its normalized name.
	Stage(ctx context.Context, src string) (domain.MediaItem, error)
	// Adopt moves a file (typically a download) into incoming as identity.
	Adopt(ctx context.Context, src, identity string, origin domain.Origin) (domain.MediaItem, error)
	// Locate returns the incoming path of identity or domain.ErrNotFound.
	Locate(ctx context.Context, identity string) (string, error)

	Transition(ctx context.Context, item domain.MediaItem, status Status) error
	Fail(ctx context.Context, item domain.MediaItem, stage domain.Stage, cause error) error
	// Finalize moves the original from incoming to done.
	Finalize(ctx context.Context, item domain.MediaItem) error

	Record(ctx context.Context, identity string) (Record, error)
	Records(ctx context.Context) ([]Record, error)
	// Reconcile repairs records left behind by an interrupted run.
	Reconcile(ctx context.Context) error

	// WorkPath returns a path in the working area for intermediate files.
	WorkPath(name string) string
}

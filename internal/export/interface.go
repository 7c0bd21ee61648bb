package export

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// Exporter writes the artifacts of a run to disk on request.
type Exporter interface {
	// Export writes every succeeded artifact of summary into destDir and
	// returns the written paths. Calling it again rewrites the same files.
	Export(ctx context.Context, summary *domain.BatchSummary, destDir string) ([]string, error)
}

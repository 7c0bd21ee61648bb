package processor

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// Processor runs the per-item pipeline. Process never returns an error: any
// stage failure is reported on the returned StageResult.
type Processor interface {
	Process(ctx context.Context, item domain.MediaItem, language string) domain.StageResult
}

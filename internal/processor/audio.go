package processor

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/naming"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
)

// extractAudio converts a video into an mp3 in the work area. Downstream
// stages read the extracted audio instead of the original.
func (p *implProcessor) extractAudio(ctx context.Context, item domain.MediaItem, videoPath string) (string, error) {
	if err := p.store.Transition(ctx, item, state.StatusExtracting); err != nil {
		return "", err
	}

	audioPath := p.store.WorkPath(naming.Stem(item.Identity) + "_audio.mp3")
	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	out, err := p.extractor.Extract(ctx, videoPath, audioPath)
	if err != nil {
		p.cleanupTempFile(ctx, audioPath)
		return "", err
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", out)
	return out, nil
}

package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
)

// transcribe sends the audio to the speech-to-text service with the run's
// language hint
func (p *implProcessor) transcribe(ctx context.Context, item domain.MediaItem, audioPath, language string) (string, error) {
	if err := p.store.Transition(ctx, item, state.StatusTranscribing); err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Starting transcription (language: %s): %s", language, audioPath)

	text, err := p.transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty transcript", domain.ErrTranscription)
	}

	p.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// analyze runs the transcript through the analysis service with the fixed
// instruction prompt
func (p *implProcessor) analyze(ctx context.Context, item domain.MediaItem, transcript string) (string, error) {
	if err := p.store.Transition(ctx, item, state.StatusAnalyzing); err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Starting analysis: %s", item.Identity)

	text, err := p.analyzer.Analyze(ctx, transcript, p.prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty analysis", domain.ErrAnalysis)
	}

	p.logger.Info(ctx, "Analysis completed: %d characters", len(text))
	return text, nil
}

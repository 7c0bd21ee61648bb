package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
)

// Process orchestrates the pipeline for one item
func (p *implProcessor) Process(ctx context.Context, item domain.MediaItem, language string) domain.StageResult {
	startTime := time.Now()
	if item.Kind == "" {
		item.Kind = media.Classify(item.Identity)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting processing: %s (%s, %s)", item.Identity, item.Kind, item.Origin)
	p.logger.Info(ctx, "========================================")

	result := domain.StageResult{
		Identity:     item.Identity,
		Origin:       item.Origin,
		ArtifactName: ArtifactName(item.Identity),
	}

	transcript, analysis, err := p.runStages(ctx, item, language)
	if err != nil {
		return p.fail(ctx, item, result, err)
	}

	// Step 5: Persist (the artifact is handed back in memory)
	result.Transcript = transcript
	result.Analysis = analysis
	result.Artifact = ComposeArtifact(transcript, analysis)
	result.Status = domain.StatusSucceeded

	// Step 6: Finalize, a failure here is logged only
	if err := p.store.Finalize(ctx, item); err != nil {
		p.logger.Warn(ctx, "Failed to move original to done folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Artifact: %s", result.ArtifactName)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return result
}

// runStages executes locate, extract, transcribe and analyze in order and
// stops at the first failure. Every returned error is a *domain.StageError.
func (p *implProcessor) runStages(ctx context.Context, item domain.MediaItem, language string) (string, string, error) {
	// Step 1: Locate
	if err := p.store.Transition(ctx, item, state.StatusLocating); err != nil {
		return "", "", &domain.StageError{Stage: domain.StageLocate, Err: err}
	}
	srcPath, err := p.store.Locate(ctx, item.Identity)
	if err != nil {
		return "", "", &domain.StageError{Stage: domain.StageLocate, Err: err}
	}

	// Step 2: Extract audio when the item is a video
	audioPath := srcPath
	switch item.Kind {
	case domain.KindAudio:
	case domain.KindNeedsExtraction:
		audioPath, err = p.extractAudio(ctx, item, srcPath)
		if err != nil {
			return "", "", &domain.StageError{Stage: domain.StageExtract, Err: err}
		}
		defer p.cleanupTempFile(ctx, audioPath)
	default:
		return "", "", &domain.StageError{
			Stage: domain.StageLocate,
			Err:   fmt.Errorf("unsupported media type: %s", item.Identity),
		}
	}

	// Step 3: Transcribe
	transcript, err := p.transcribe(ctx, item, audioPath, language)
	if err != nil {
		return "", "", &domain.StageError{Stage: domain.StageTranscribe, Err: err}
	}

	// Step 4: Analyze, the transcript is discarded if this fails
	analysis, err := p.analyze(ctx, item, transcript)
	if err != nil {
		return "", "", &domain.StageError{Stage: domain.StageAnalyze, Err: err}
	}

	return transcript, analysis, nil
}

// fail records the failure and builds the failed result. The original stays
// in incoming so a later run picks it up again.
func (p *implProcessor) fail(ctx context.Context, item domain.MediaItem, result domain.StageResult, err error) domain.StageResult {
	stage, _ := domain.StageOf(err)
	cause := err
	var se *domain.StageError
	if errors.As(err, &se) {
		cause = se.Err
	}

	if domain.IsToolMissing(cause) {
		p.logger.Error(ctx, "Required tool is missing, %s cannot continue: %v", item.Identity, cause)
	} else {
		p.logger.Error(ctx, "Processing failed at %s stage for %s: %v", stage, item.Identity, cause)
	}

	if ferr := p.store.Fail(ctx, item, stage, cause); ferr != nil {
		p.logger.Warn(ctx, "Failed to record failure for %s: %v", item.Identity, ferr)
	}

	result.Status = domain.StatusFailed
	result.FailingStage = stage
	result.Err = err
	return result
}

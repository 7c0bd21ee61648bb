package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// Extract converts the video's audio track to 16kHz mono MP3.
// MP3 keeps uploads to the transcription API small; 16kHz mono is all
// speech recognition needs.
func (e *implExtractor) Extract(ctx context.Context, videoPath, audioPath string) (string, error) {
	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video, -ac 1: mono, -ar 16000: 16kHz, libmp3lame at 64k
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "libmp3lame",
		"-b:a", "64k",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.ffmpegPath, args...); err != nil {
		e.removePartial(ctx, audioPath)
		if errors.Is(err, executor.ErrCommandNotFound) {
			return "", &domain.ToolMissingError{Tool: e.ffmpegPath, Class: domain.ErrExtraction, Err: err}
		}
		return "", fmt.Errorf("%w: ffmpeg: %v", domain.ErrExtraction, err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		e.removePartial(ctx, audioPath)
		return "", fmt.Errorf("%w: ffmpeg completed but output file is missing: %v", domain.ErrExtraction, err)
	}
	if info.Size() == 0 {
		e.removePartial(ctx, audioPath)
		return "", fmt.Errorf("%w: ffmpeg produced an empty file", domain.ErrExtraction)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}

func (e *implExtractor) removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn(ctx, "Failed to remove partial audio %s: %v", path, err)
	}
}

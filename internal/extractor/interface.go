package extractor

import "context"

// Extractor produces an audio-only encoding of a video file.
type Extractor interface {
	// Extract writes the audio track of videoPath to audioPath. On failure no
	// file is left at audioPath.
	Extract(ctx context.Context, videoPath, audioPath string) (string, error)
}

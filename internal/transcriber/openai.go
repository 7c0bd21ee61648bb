package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// Transcribe streams the audio file to the transcription endpoint with the
// given language hint.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %v", domain.ErrTranscription, err)
	}
	defer f.Close()

	t.logger.Info(ctx, "Transcribing %s (language: %s, model: %s)", filepath.Base(audioPath), language, t.model)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: filepath.Base(audioPath),
		Reader:   f,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: no speech recognized", domain.ErrTranscription)
	}

	t.logger.Info(ctx, "Transcription successful: %d characters", len(text))
	return text, nil
}

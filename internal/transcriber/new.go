package transcriber

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

// Options configures the OpenAI transcription client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

type implTranscriber struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// New creates a Transcriber backed by the OpenAI audio API
func New(opts Options, log logger.Logger) Transcriber {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &implTranscriber{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log,
	}
}

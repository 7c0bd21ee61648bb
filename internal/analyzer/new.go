package analyzer

import (
	"fmt"

	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

// Options selects and configures an analysis backend.
type Options struct {
	Provider   string
	Model      string
	BaseURL    string
	OpenAIKey  string
	GeminiKeys []string
}

// New creates the Analyzer for the configured provider.
func New(opts Options, log logger.Logger) (Analyzer, error) {
	switch opts.Provider {
	case config.ProviderOpenAI, "":
		return newOpenAI(opts, log), nil
	case config.ProviderGemini:
		if len(opts.GeminiKeys) == 0 {
			return nil, fmt.Errorf("gemini analyzer needs at least one API key")
		}
		return newGemini(opts, log), nil
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", opts.Provider)
	}
}

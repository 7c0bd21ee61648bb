package analyzer

import "context"

// Analyzer derives analysis/translation text from a transcript using a fixed
// instruction prompt.
type Analyzer interface {
	Analyze(ctx context.Context, transcript, prompt string) (string, error)
}

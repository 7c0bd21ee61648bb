package analyzer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

type implGemini struct {
	apiKeys    []string
	currentKey int
	baseURL    string
	model      string
	logger     logger.Logger
}

func newGemini(opts Options, log logger.Logger) Analyzer {
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGemini{
		apiKeys: opts.GeminiKeys,
		baseURL: opts.BaseURL,
		model:   model,
		logger:  log,
	}
}

// Analyze sends the transcript to Gemini with the prompt as system
// instruction. Rotates API keys on 429 / quota errors.
func (g *implGemini) Analyze(ctx context.Context, transcript, prompt string) (string, error) {
	g.logger.Info(ctx, "Analyzing and translating with %s...", g.model)

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		clientCfg := &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		}
		if g.baseURL != "" {
			clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
		}

		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(transcript), genCfg)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: generate content: %v", domain.ErrAnalysis, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if text = strings.TrimSpace(text); text != "" {
				g.logger.Info(ctx, "AI analysis complete")
				return text, nil
			}
		}

		return "", fmt.Errorf("%w: empty response from Gemini", domain.ErrAnalysis)
	}

	return "", fmt.Errorf("%w: all API keys exhausted: %v", domain.ErrAnalysis, lastErr)
}

func (g *implGemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

// fixedSeed keeps repeated requests on identical input as stable as the
// API allows.
const fixedSeed = 42

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func newOpenAI(opts Options, log logger.Logger) Analyzer {
	cfg := openai.DefaultConfig(opts.OpenAIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4o
	}
	return &implOpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log,
	}
}

// Analyze sends the prompt as the system message and the transcript as the
// user message.
func (a *implOpenAI) Analyze(ctx context.Context, transcript, prompt string) (string, error) {
	a.logger.Info(ctx, "Analyzing and translating with %s...", a.model)

	seed := fixedSeed
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		// zero would be dropped by omitempty and fall back to the API default
		Temperature: math.SmallestNonzeroFloat32,
		Seed:        &seed,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAnalysis, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrAnalysis, a.model)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrAnalysis, a.model)
	}

	a.logger.Info(ctx, "AI analysis complete")
	return text, nil
}

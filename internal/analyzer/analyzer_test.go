package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default provider", Options{OpenAIKey: "k"}, false},
		{"openai", Options{Provider: "openai", OpenAIKey: "k"}, false},
		{"gemini", Options{Provider: "gemini", GeminiKeys: []string{"k"}}, false},
		{"gemini without keys", Options{Provider: "gemini"}, true},
		{"unknown", Options{Provider: "other"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts, logger.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Seed        *int    `json:"seed"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAIAnalyze(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"שלום עולם."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	a, err := New(Options{OpenAIKey: "sk-test", BaseURL: srv.URL + "/v1"}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	out, err := a.Analyze(context.Background(), "Hello world.", "Translate to Hebrew")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if out != "שלום עולם." {
		t.Errorf("Analyze() = %q", out)
	}

	if got.Model != "gpt-4o" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "Translate to Hebrew" ||
		got.Messages[1].Role != "user" || got.Messages[1].Content != "Hello world." {
		t.Errorf("messages = %+v", got.Messages)
	}
	if got.Temperature <= 0 || got.Temperature > 0.001 {
		t.Errorf("temperature = %v, want near zero", got.Temperature)
	}
	if got.Seed == nil || *got.Seed != fixedSeed {
		t.Errorf("seed = %v", got.Seed)
	}
}

func TestOpenAIAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a, _ := New(Options{OpenAIKey: "sk-test", BaseURL: srv.URL + "/v1"}, logger.NewNop())
			_, err := a.Analyze(context.Background(), "text", "prompt")
			if !errors.Is(err, domain.ErrAnalysis) {
				t.Errorf("Analyze() error = %v, want ErrAnalysis", err)
			}
		})
	}
}

func TestGeminiRotatesOnQuota(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("x-goog-api-key") == "exhausted" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ניתוח"},{"text":" מלא"}]}}]}`))
	}))
	defer srv.Close()

	a, err := New(Options{
		Provider:   "gemini",
		BaseURL:    srv.URL,
		GeminiKeys: []string{"exhausted", "good"},
	}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	out, err := a.Analyze(context.Background(), "transcript", "prompt")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if out != "ניתוח מלא" {
		t.Errorf("Analyze() = %q", out)
	}
	if a.(*implGemini).currentKey != 1 {
		t.Errorf("currentKey = %d, want rotation to 1", a.(*implGemini).currentKey)
	}
	if calls < 2 {
		t.Errorf("calls = %d, want at least 2", calls)
	}
}

func TestIsQuotaError(t *testing.T) {
	if !isQuotaError(errors.New("Error 429, Message: too many")) {
		t.Error("429 should be a quota error")
	}
	if !isQuotaError(errors.New("RESOURCE_EXHAUSTED")) {
		t.Error("RESOURCE_EXHAUSTED should be a quota error")
	}
	if isQuotaError(errors.New("invalid argument")) {
		t.Error("invalid argument is not a quota error")
	}
}

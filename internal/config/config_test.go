package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "gemini provider",
			config: Config{
				Analysis: AnalysisConfig{Provider: "Gemini"},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Analysis: AnalysisConfig{Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name:    "unsupported language",
			config:  Config{Language: "fr"},
			wantErr: true,
		},
		{
			name:    "language by name",
			config:  Config{Language: "Hebrew"},
			wantErr: false,
		},
		{
			name: "bad log format",
			config: Config{
				Logging: LoggingConfig{Format: "xml"},
			},
			wantErr: true,
		},
		{
			name: "negative settle delay",
			config: Config{
				Watch: WatchConfig{SettleDelay: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Language != "ar" {
		t.Errorf("Language = %v, want ar", cfg.Language)
	}
	if cfg.Transcription.Model != "whisper-1" {
		t.Errorf("Transcription.Model = %v", cfg.Transcription.Model)
	}
	if cfg.Analysis.Provider != ProviderOpenAI || cfg.Analysis.Model != "gpt-4o" {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.YtDlp != "yt-dlp" {
		t.Errorf("Tools = %+v", cfg.Tools)
	}
	if cfg.Watch.SettleDelay != 500*time.Millisecond {
		t.Errorf("SettleDelay = %v", cfg.Watch.SettleDelay)
	}

	gemini := Config{Analysis: AnalysisConfig{Provider: "gemini"}}
	if err := gemini.Validate(); err != nil {
		t.Fatal(err)
	}
	if gemini.Analysis.Model != "gemini-2.5-flash" {
		t.Errorf("gemini model = %v", gemini.Analysis.Model)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
paths:
  workspace: "data/workspace"
language: "Hebrew"

analysis:
  provider: "openai"
  model: "gpt-4o-mini"

tools:
  ffmpeg: "/usr/local/bin/ffmpeg"

logging:
  level: "debug"
  format: "json"

watch:
  settle_delay: 2s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Workspace != "data/workspace" {
		t.Errorf("Workspace = %v, want %v", cfg.Paths.Workspace, "data/workspace")
	}
	if cfg.Language != "he" {
		t.Errorf("Language = %v, want he", cfg.Language)
	}
	if cfg.Analysis.Model != "gpt-4o-mini" {
		t.Errorf("Analysis.Model = %v", cfg.Analysis.Model)
	}
	if cfg.Tools.YtDlp != "yt-dlp" {
		t.Errorf("YtDlp default = %v", cfg.Tools.YtDlp)
	}
	if cfg.Watch.SettleDelay != 2*time.Second {
		t.Errorf("SettleDelay = %v", cfg.Watch.SettleDelay)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

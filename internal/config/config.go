package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Language      string              `yaml:"language"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Tools         ToolsConfig         `yaml:"tools"`
	Logging       LoggingConfig       `yaml:"logging"`
	Watch         WatchConfig         `yaml:"watch"`

	// Secrets are never read from the YAML file.
	Secrets Secrets `yaml:"-"`
}

type PathsConfig struct {
	Workspace string `yaml:"workspace"`
	Secrets   string `yaml:"secrets"`
}

type TranscriptionConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AnalysisConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type ToolsConfig struct {
	FFmpeg string `yaml:"ffmpeg"`
	YtDlp  string `yaml:"ytdlp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads a YAML config file, validates it and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Paths.Workspace == "" {
		c.Paths.Workspace = filepath.Join(os.TempDir(), "transcribe-flow")
	}
	if c.Paths.Secrets == "" {
		c.Paths.Secrets = ".env"
	}
	if c.Language == "" {
		c.Language = string(Arabic)
	}
	lang, err := ParseLanguage(c.Language)
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}
	c.Language = string(lang)

	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}

	c.Analysis.Provider = strings.ToLower(strings.TrimSpace(c.Analysis.Provider))
	switch c.Analysis.Provider {
	case "":
		c.Analysis.Provider = ProviderOpenAI
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("analysis.provider must be %q or %q (got: %s)", ProviderOpenAI, ProviderGemini, c.Analysis.Provider)
	}
	if c.Analysis.Model == "" {
		if c.Analysis.Provider == ProviderGemini {
			c.Analysis.Model = "gemini-2.5-flash"
		} else {
			c.Analysis.Model = "gpt-4o"
		}
	}

	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = "yt-dlp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json (got: %s)", c.Logging.Format)
	}

	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Watch.SettleDelay < 0 {
		return fmt.Errorf("watch.settle_delay must not be negative")
	}

	return nil
}

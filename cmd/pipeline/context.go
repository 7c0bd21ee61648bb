package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/analyzer"
	"github.com/nguyentantai21042004/transcribe-flow/internal/batch"
	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/extractor"
	"github.com/nguyentantai21042004/transcribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/processor"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

const (
	defaultConfigPath = "config.yaml"
	logFileName       = "app.log"
)

type commandContext struct {
	configFlag    string
	workspaceFlag string
	tokenFlag     string

	config *config.Config
	logger logger.Logger
}

// load reads the config file and secrets. A missing default config file
// falls back to built-in defaults; an explicitly named one must exist.
func (c *commandContext) load(explicitConfig bool) error {
	path := strings.TrimSpace(c.configFlag)
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicitConfig || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}
	if ws := strings.TrimSpace(c.workspaceFlag); ws != "" {
		cfg.Paths.Workspace = ws
	}

	secrets, err := config.LoadSecrets(cfg.Paths.Secrets)
	if err != nil {
		return err
	}
	cfg.Secrets = secrets
	c.config = cfg
	return nil
}

// checkToken enforces the application gate.
func (c *commandContext) checkToken() error {
	return c.config.Secrets.CheckToken(c.tokenFlag)
}

// openLogger writes to stdout and to logs/app.log in the workspace.
func (c *commandContext) openLogger() error {
	dirs := state.Layout(c.config.Paths.Workspace)
	log, err := logger.NewWithOptions(logger.Options{
		Level:    c.config.Logging.Level,
		Format:   c.config.Logging.Format,
		FilePath: filepath.Join(dirs.Logs, logFileName),
		NoColor:  !shouldColorize(os.Stdout),
	})
	c.logger = log
	return err
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = logger.Close(c.logger)
	}
}

func (c *commandContext) openStore() (state.Store, error) {
	if c.logger == nil {
		if err := c.openLogger(); err != nil {
			return nil, err
		}
	}
	store, err := state.New(c.config.Paths.Workspace, c.logger)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	return store, nil
}

// coordinator wires the whole pipeline for a run.
func (c *commandContext) coordinator() (batch.Coordinator, state.Store, error) {
	cfg := c.config
	if err := cfg.Secrets.RequireFor(cfg.Analysis.Provider); err != nil {
		return nil, nil, err
	}

	store, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}

	exec := executor.New()
	an, err := analyzer.New(analyzer.Options{
		Provider:   cfg.Analysis.Provider,
		Model:      cfg.Analysis.Model,
		BaseURL:    cfg.Analysis.BaseURL,
		OpenAIKey:  cfg.Secrets.OpenAIKey,
		GeminiKeys: cfg.Secrets.GeminiKeys,
	}, c.logger)
	if err != nil {
		return nil, nil, err
	}

	proc := processor.New(processor.Deps{
		Store:     store,
		Extractor: extractor.New(cfg.Tools.FFmpeg, exec, c.logger),
		Transcriber: transcriber.New(transcriber.Options{
			APIKey:  cfg.Secrets.OpenAIKey,
			Model:   cfg.Transcription.Model,
			BaseURL: cfg.Transcription.BaseURL,
		}, c.logger),
		Analyzer: an,
	}, cfg.Secrets.Prompt, c.logger)

	fetch := fetcher.New(cfg.Tools.YtDlp, exec, c.logger)
	return batch.New(store, fetch, proc, c.logger), store, nil
}

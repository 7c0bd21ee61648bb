package processor

import (
	"github.com/nguyentantai21042004/transcribe-flow/internal/analyzer"
	"github.com/nguyentantai21042004/transcribe-flow/internal/extractor"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
)

// Deps are the collaborators a Processor drives.
type Deps struct {
	Store       state.Store
	Extractor   extractor.Extractor
	Transcriber transcriber.Transcriber
	Analyzer    analyzer.Analyzer
}

type implProcessor struct {
	store       state.Store
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	analyzer    analyzer.Analyzer
	prompt      string
	logger      logger.Logger
}

// New creates a new Processor instance. prompt is the fixed instruction
// handed to the analyzer for every item.
func New(deps Deps, prompt string, log logger.Logger) Processor {
	return &implProcessor{
		store:       deps.Store,
		extractor:   deps.Extractor,
		transcriber: deps.Transcriber,
		analyzer:    deps.Analyzer,
		prompt:      prompt,
		logger:      log,
	}
}

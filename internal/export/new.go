package export

import "github.com/nguyentantai21042004/transcribe-flow/internal/logger"

// Options selects the output formats. Text is always written.
type Options struct {
	Docx bool
}

type implExporter struct {
	docx   bool
	logger logger.Logger
}

// New creates a new Exporter instance
func New(opts Options, log logger.Logger) Exporter {
	return &implExporter{
		docx:   opts.Docx,
		logger: log,
	}
}

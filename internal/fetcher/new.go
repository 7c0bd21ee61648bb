package fetcher

import (
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

type implFetcher struct {
	ytdlpPath string
	executor  executor.Executor
	logger    logger.Logger
}

// New creates a yt-dlp backed Fetcher
func New(ytdlpPath string, exec executor.Executor, log logger.Logger) Fetcher {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &implFetcher{
		ytdlpPath: ytdlpPath,
		executor:  exec,
		logger:    log,
	}
}

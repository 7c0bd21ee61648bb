package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// Fetch downloads the best single-file format of a video page with yt-dlp.
func (f *implFetcher) Fetch(ctx context.Context, rawURL, destDir string) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	f.logger.Info(ctx, "Downloading video from URL: %s", rawURL)

	// --print after_move:filepath reports the final path once the file is in place
	args := []string{
		"--no-playlist",
		"--no-progress",
		"--no-simulate",
		"-f", "best",
		"-o", filepath.Join(destDir, "%(title).80s.%(ext)s"),
		"--print", "after_move:filepath",
		rawURL,
	}

	out, err := f.executor.Execute(ctx, f.ytdlpPath, args...)
	if err != nil {
		if errors.Is(err, executor.ErrCommandNotFound) {
			return "", &domain.ToolMissingError{Tool: f.ytdlpPath, Class: domain.ErrFetch, Err: err}
		}
		return "", fmt.Errorf("%w: yt-dlp: %v", domain.ErrFetch, err)
	}

	path := lastLine(out)
	if path == "" {
		return "", fmt.Errorf("%w: yt-dlp did not report a downloaded file", domain.ErrFetch)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: downloaded file is missing: %v", domain.ErrFetch, err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: downloaded file is empty", domain.ErrFetch)
	}

	f.logger.Info(ctx, "Downloaded: %s", filepath.Base(path))
	return path, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Package preflight reports whether the external tools the pipeline shells
// out to can be found.
package preflight

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// Requirement defines an external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	VersionArg  string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Path      string
	Version   string
	Detail    string
}

// Requirements lists the tools named in cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			VersionArg:  "-version",
			Description: "extracts audio from video files",
		},
		{
			Name:        "yt-dlp",
			Command:     cfg.Tools.YtDlp,
			VersionArg:  "--version",
			Description: "downloads media from a URL",
			Optional:    true,
		},
	}
}

// Check evaluates the requirements and reports availability.
func Check(ctx context.Context, exec executor.Executor, reqs []Requirement) []Status {
	results := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		req.Command = strings.TrimSpace(req.Command)
		status := Status{Requirement: req}

		if req.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}

		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path

		if req.VersionArg != "" {
			if out, err := exec.Execute(ctx, path, req.VersionArg); err == nil {
				status.Version = firstLine(out)
			}
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired reports whether any non-optional requirement is unavailable.
func MissingRequired(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

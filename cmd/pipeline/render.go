package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBold   = "\033[1m"
)

const maxErrorWidth = 80

// renderSummary prints one row per item followed by the overall outcome.
func renderSummary(w io.Writer, summary *domain.BatchSummary) {
	colorize := shouldColorize(w)

	if summary.Total() > 0 {
		rows := make([][]string, 0, summary.Total())
		for _, res := range summary.Results {
			detail := res.ArtifactName
			stage := "-"
			if !res.Succeeded() {
				stage = string(res.FailingStage)
				detail = truncate(errorText(res.Err), maxErrorWidth)
			}
			rows = append(rows, []string{res.Identity, string(res.Origin), string(res.Status), stage, detail})
		}
		fmt.Fprintln(w, renderTable(
			[]string{"Item", "Origin", "Status", "Stage", "Artifact / Error"},
			rows,
			nil,
		))
	}

	line := fmt.Sprintf("Result: %s (%d succeeded, %d failed)",
		summary.Classification(), summary.Succeeded(), summary.Failed())
	if colorize {
		line = classificationColor(summary.Classification()) + line + ansiReset
	}
	fmt.Fprintln(w, line)

	if summary.ToolMissing {
		renderToolBanner(w, colorize)
	}
}

// renderToolBanner makes the missing tool condition stand out from ordinary
// per-item failures.
func renderToolBanner(w io.Writer, colorize bool) {
	lines := []string{
		"A REQUIRED EXTERNAL TOOL IS NOT INSTALLED",
		"Every file that needs it will keep failing until it is installed.",
		"Run `pipeline doctor` to see which tool is missing.",
	}
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	rule := strings.Repeat("!", width+4)

	out := []string{rule}
	for _, l := range lines {
		out = append(out, "! "+l+strings.Repeat(" ", width-len(l))+" !")
	}
	out = append(out, rule)

	text := strings.Join(out, "\n")
	if colorize {
		text = ansiBold + ansiRed + text + ansiReset
	}
	fmt.Fprintln(w, text)
}

func classificationColor(c domain.Classification) string {
	switch c {
	case domain.AllSucceeded:
		return ansiGreen
	case domain.Mixed:
		return ansiYellow
	default:
		return ansiRed
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

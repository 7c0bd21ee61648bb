package main

import (
	"fmt"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitSetup  = 2
)

// exitError carries a process exit code through cobra. err may be nil when
// the outcome was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// exitCodeFor maps a run outcome to the process exit code. A missing tool
// wins over per-item results.
func exitCodeFor(summary *domain.BatchSummary) int {
	if summary.ToolMissing {
		return exitSetup
	}
	if summary.Classification() == domain.AllSucceeded {
		return exitOK
	}
	return exitFailed
}

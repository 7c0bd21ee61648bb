package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("media file not found")
	ErrFetch            = errors.New("fetch failed")
	ErrExtraction       = errors.New("audio extraction failed")
	ErrToolNotInstalled = errors.New("required tool is not installed")
	ErrTranscription    = errors.New("transcription failed")
	ErrAnalysis         = errors.New("analysis failed")
)

// StageError ties a failure to the pipeline stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ToolMissingError reports an external binary that could not be executed at
// all. Every later call that needs the same tool will fail the same way.
type ToolMissingError struct {
	Tool  string
	Class error // ErrExtraction or ErrFetch
	Err   error
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s is not installed or not found in PATH", e.Tool)
}

// Is matches ErrToolNotInstalled and the stage class of the failure.
func (e *ToolMissingError) Is(target error) bool {
	return target == ErrToolNotInstalled || (e.Class != nil && target == e.Class)
}

func (e *ToolMissingError) Unwrap() error { return e.Err }

// IsToolMissing reports whether err is a setup-class tool failure.
func IsToolMissing(err error) bool {
	return errors.Is(err, ErrToolNotInstalled)
}

// StageOf returns the stage recorded on err, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

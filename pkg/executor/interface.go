package executor

import (
	"context"
	"errors"
)

// ErrCommandNotFound is returned when the requested binary cannot be resolved.
var ErrCommandNotFound = errors.New("command not found")

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}

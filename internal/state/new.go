package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

type implStore struct {
	dirs   Dirs
	logger logger.Logger
}

// New opens the workspace at root, creating its areas when missing.
func New(root string, log logger.Logger) (Store, error) {
	dirs := Layout(root)
	for _, dir := range []string{dirs.Incoming, dirs.Done, dirs.Work, dirs.Logs, dirs.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return &implStore{
		dirs:   dirs,
		logger: log,
	}, nil
}

// Layout returns the directory layout under root without touching disk.
func Layout(root string) Dirs {
	return Dirs{
		Root:     root,
		Incoming: filepath.Join(root, "incoming"),
		Done:     filepath.Join(root, "done"),
		Work:     filepath.Join(root, "work"),
		Logs:     filepath.Join(root, "logs"),
		State:    filepath.Join(root, "state"),
	}
}

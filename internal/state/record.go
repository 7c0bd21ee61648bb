package state

import (
	"time"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

// Status is the persisted lifecycle state of one item.
type Status string

const (
	StatusStaged       Status = "staged"
	StatusLocating     Status = "locating"
	StatusExtracting   Status = "extracting"
	StatusTranscribing Status = "transcribing"
	StatusAnalyzing    Status = "analyzing"
	StatusFinalizing   Status = "finalizing"
	StatusDone         Status = "done"
	StatusFailed       Status = "failed"
)

// InFlight reports whether the status belongs to a run that is still
// executing stages.
func (s Status) InFlight() bool {
	switch s {
	case StatusLocating, StatusExtracting, StatusTranscribing, StatusAnalyzing:
		return true
	}
	return false
}

// Record is the metadata kept next to each item in the state area.
type Record struct {
	Identity    string        `yaml:"identity"`
	Origin      domain.Origin `yaml:"origin"`
	Kind        domain.Kind   `yaml:"kind"`
	Status      Status        `yaml:"status"`
	FailedStage domain.Stage  `yaml:"failed_stage,omitempty"`
	Error       string        `yaml:"error,omitempty"`
	Attempts    int           `yaml:"attempts"`
	UpdatedAt   time.Time     `yaml:"updated_at"`
}

// Dirs is the on-disk layout of a workspace.
type Dirs struct {
	Root     string
	Incoming string
	Done     string
	Work     string
	Logs     string
	State    string
}

package domain

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

// Origin tells how an item entered the incoming area.
type Origin string

const (
	OriginUploaded Origin = "uploaded"
	OriginFetched  Origin = "fetched"
)

// Kind is the media class derived from a file extension.
type Kind string

const (
	KindUnsupported     Kind = "unsupported"
	KindAudio           Kind = "audio"
	KindNeedsExtraction Kind = "video"
)

// Stage names one step of the per-item pipeline.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageLocate     Stage = "locate"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageAnalyze    Stage = "analyze"
	StagePersist    Stage = "persist"
	StageFinalize   Stage = "finalize"
)

// MediaItem is one unit of work.
type MediaItem struct {
	Identity string
	Origin   Origin
	Kind     Kind
	Path     string
}

// ResultStatus is the terminal outcome of one item.
type ResultStatus string

const (
	StatusSucceeded ResultStatus = "succeeded"
	StatusFailed    ResultStatus = "failed"
)

// StageResult is the finalized outcome of running the pipeline on one item.
// It is built once by the stage executor and not mutated afterwards.
type StageResult struct {
	Identity     string
	Origin       Origin
	Transcript   string
	Analysis     string
	ArtifactName string
	Artifact     string
	Status       ResultStatus
	FailingStage Stage
	Err          error
}

// Succeeded reports whether the item produced its artifact.
func (r StageResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// Classification is the caller-facing summary of a run.
type Classification string

const (
	AllSucceeded Classification = "all-succeeded"
	AllFailed    Classification = "all-failed"
	Mixed        Classification = "mixed"
)

// BatchSummary aggregates the results of one run. A new summary is created
// for every run.
type BatchSummary struct {
	Results     []StageResult
	ToolMissing bool

	succeeded int
	failed    int
	artifacts map[string]string
}

// NewBatchSummary returns an empty summary.
func NewBatchSummary() *BatchSummary {
	return &BatchSummary{artifacts: make(map[string]string)}
}

// Add records one finalized item result. A succeeded item whose artifact
// name is already taken in this run is stored under a numbered name, so
// every succeeded item stays retrievable.
func (s *BatchSummary) Add(res StageResult) {
	if res.Succeeded() {
		res.ArtifactName = s.freeName(res.ArtifactName)
		s.artifacts[res.ArtifactName] = res.Artifact
		s.succeeded++
		s.Results = append(s.Results, res)
		return
	}
	s.Results = append(s.Results, res)
	s.failed++
	if IsToolMissing(res.Err) {
		s.ToolMissing = true
	}
}

// freeName returns name, or name with a _2, _3, ... suffix on its stem when
// an earlier item of the run already holds it.
func (s *BatchSummary) freeName(name string) string {
	if _, taken := s.artifacts[name]; !taken {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := stem + "_" + strconv.Itoa(i) + ext
		if _, taken := s.artifacts[candidate]; !taken {
			return candidate
		}
	}
}

// Succeeded returns the number of items that produced an artifact.
func (s *BatchSummary) Succeeded() int { return s.succeeded }

// Failed returns the number of items that failed at some stage.
func (s *BatchSummary) Failed() int { return s.failed }

// Total returns the number of items processed in the run.
func (s *BatchSummary) Total() int { return s.succeeded + s.failed }

// Classification derives the overall outcome from the counters. A run with
// no candidates counts as all-succeeded.
func (s *BatchSummary) Classification() Classification {
	switch {
	case s.failed == 0:
		return AllSucceeded
	case s.succeeded == 0:
		return AllFailed
	default:
		return Mixed
	}
}

// Artifact returns the content of a succeeded item's artifact.
func (s *BatchSummary) Artifact(name string) (string, bool) {
	content, ok := s.artifacts[name]
	return content, ok
}

// ArtifactNames lists every retrievable artifact in sorted order.
func (s *BatchSummary) ArtifactNames() []string {
	names := make([]string, 0, len(s.artifacts))
	for name := range s.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

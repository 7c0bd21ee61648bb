package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

func newTestStore(t *testing.T) *implStore {
	t.Helper()
	s, err := New(t.TempDir(), logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s.(*implStore)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewCreatesLayout(t *testing.T) {
	s := newTestStore(t)
	d := s.Dirs()
	for _, dir := range []string{d.Incoming, d.Done, d.Work, d.Logs, d.State} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s missing: %v", dir, err)
		}
	}
}

func TestStage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	src := filepath.Join(t.TempDir(), "Café Résumé (1).mp4")
	writeFile(t, src, "video")

	item, err := s.Stage(ctx, src)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if item.Identity != "Cafe_Resume_1.mp4" {
		t.Errorf("Identity = %q", item.Identity)
	}
	if item.Kind != domain.KindNeedsExtraction || item.Origin != domain.OriginUploaded {
		t.Errorf("item = %+v", item)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("upload source should be copied, not moved")
	}

	rec, err := s.Record(ctx, item.Identity)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.Status != StatusStaged || rec.Origin != domain.OriginUploaded {
		t.Errorf("record = %+v", rec)
	}
}

func TestStageFileAlreadyInIncoming(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	path := filepath.Join(s.dirs.Incoming, "talk.mp3")
	writeFile(t, path, "sixteen bytes!!!")

	item, err := s.Stage(ctx, path)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if item.Identity != "talk.mp3" {
		t.Errorf("Identity = %q", item.Identity)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sixteen bytes!!!" {
		t.Errorf("content after staging in place = %q", data)
	}

	rec, _ := s.Record(ctx, item.Identity)
	if rec.Status != StatusStaged {
		t.Errorf("record = %+v", rec)
	}
}

func TestAdoptKeepsOrigin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	src := s.WorkPath("download.webm")
	writeFile(t, src, "remote")

	item, err := s.Adopt(ctx, src, "ab12cd34_download.webm", domain.OriginFetched)
	if err != nil {
		t.Fatalf("Adopt() error = %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Error("adopted file should be moved out of work")
	}

	items, err := s.Incoming(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Identity != item.Identity || items[0].Origin != domain.OriginFetched {
		t.Errorf("Incoming() = %+v", items)
	}
}

func TestLocateNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Locate(context.Background(), "ghost.mp3")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Locate() error = %v, want ErrNotFound", err)
	}
}

func TestFinalizeMovesToDone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := domain.MediaItem{Identity: "talk.mp3", Origin: domain.OriginUploaded}
	writeFile(t, filepath.Join(s.dirs.Incoming, item.Identity), "audio")

	if err := s.Transition(ctx, item, StatusLocating); err != nil {
		t.Fatal(err)
	}
	if err := s.Finalize(ctx, item); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if fileExists(filepath.Join(s.dirs.Incoming, item.Identity)) {
		t.Error("file still in incoming")
	}
	if !fileExists(filepath.Join(s.dirs.Done, item.Identity)) {
		t.Error("file not in done")
	}

	rec, _ := s.Record(ctx, item.Identity)
	if rec.Status != StatusDone || rec.Attempts != 1 {
		t.Errorf("record = %+v", rec)
	}
}

func TestFinalizeKeepsEarlierOriginal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := domain.MediaItem{Identity: "talk.mp3", Origin: domain.OriginUploaded}
	writeFile(t, filepath.Join(s.dirs.Done, item.Identity), "first upload")
	writeFile(t, filepath.Join(s.dirs.Incoming, item.Identity), "second upload")

	if err := s.Finalize(ctx, item); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.dirs.Done, item.Identity))
	if err != nil || string(data) != "second upload" {
		t.Errorf("done/%s = %q, %v", item.Identity, data, err)
	}

	entries, err := os.ReadDir(s.dirs.Done)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("done has %d files, want both originals", len(entries))
	}
	for _, e := range entries {
		if e.Name() == item.Identity {
			continue
		}
		if !strings.HasPrefix(e.Name(), "talk_") || filepath.Ext(e.Name()) != ".mp3" {
			t.Errorf("earlier original kept as %q", e.Name())
		}
		kept, _ := os.ReadFile(filepath.Join(s.dirs.Done, e.Name()))
		if string(kept) != "first upload" {
			t.Errorf("earlier original content = %q", kept)
		}
	}
}

func TestFailRecordsStage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	item := domain.MediaItem{Identity: "talk.mp3"}

	if err := s.Fail(ctx, item, domain.StageTranscribe, errors.New("quota exceeded")); err != nil {
		t.Fatal(err)
	}
	rec, err := s.Record(ctx, item.Identity)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != StatusFailed || rec.FailedStage != domain.StageTranscribe || rec.Error != "quota exceeded" {
		t.Errorf("record = %+v", rec)
	}

	// a later attempt clears the failure details
	if err := s.Transition(ctx, item, StatusLocating); err != nil {
		t.Fatal(err)
	}
	rec, _ = s.Record(ctx, item.Identity)
	if rec.FailedStage != "" || rec.Error != "" {
		t.Errorf("stale failure kept: %+v", rec)
	}
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	moved := domain.MediaItem{Identity: "moved.mp3"}
	writeFile(t, filepath.Join(s.dirs.Done, moved.Identity), "a")
	if err := s.Transition(ctx, moved, StatusFinalizing); err != nil {
		t.Fatal(err)
	}

	notMoved := domain.MediaItem{Identity: "pending.mp3"}
	writeFile(t, filepath.Join(s.dirs.Incoming, notMoved.Identity), "b")
	if err := s.Transition(ctx, notMoved, StatusFinalizing); err != nil {
		t.Fatal(err)
	}

	midway := domain.MediaItem{Identity: "midway.mp4"}
	writeFile(t, filepath.Join(s.dirs.Incoming, midway.Identity), "c")
	if err := s.Transition(ctx, midway, StatusTranscribing); err != nil {
		t.Fatal(err)
	}

	vanished := domain.MediaItem{Identity: "vanished.wav"}
	if err := s.Transition(ctx, vanished, StatusAnalyzing); err != nil {
		t.Fatal(err)
	}

	lost := domain.MediaItem{Identity: "lost.mp3"}
	if err := s.Fail(ctx, lost, domain.StageLocate, domain.ErrNotFound); err != nil {
		t.Fatal(err)
	}

	retry := domain.MediaItem{Identity: "retry.mp3"}
	writeFile(t, filepath.Join(s.dirs.Incoming, retry.Identity), "d")
	if err := s.Fail(ctx, retry, domain.StageTranscribe, domain.ErrTranscription); err != nil {
		t.Fatal(err)
	}

	writeFile(t, s.WorkPath("midway.mp3"), "partial")

	if err := s.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	want := map[string]Status{
		moved.Identity:    StatusDone,
		notMoved.Identity: StatusStaged,
		midway.Identity:   StatusStaged,
		retry.Identity:    StatusFailed,
	}
	for id, status := range want {
		rec, err := s.Record(ctx, id)
		if err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
		if rec.Status != status {
			t.Errorf("%s status = %v, want %v", id, rec.Status, status)
		}
	}

	if _, err := s.Record(ctx, vanished.Identity); !errors.Is(err, ErrNoRecord) {
		t.Errorf("vanished record should be dropped, err = %v", err)
	}
	if _, err := s.Record(ctx, lost.Identity); !errors.Is(err, ErrNoRecord) {
		t.Errorf("failed record without a file should be dropped, err = %v", err)
	}
	if fileExists(s.WorkPath("midway.mp3")) {
		t.Error("work area not cleared")
	}
}

func TestIncomingSkipsDirectories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	writeFile(t, filepath.Join(s.dirs.Incoming, "b.mp3"), "x")
	writeFile(t, filepath.Join(s.dirs.Incoming, "a.txt"), "x")
	if err := os.Mkdir(filepath.Join(s.dirs.Incoming, "nested.mp3"), 0755); err != nil {
		t.Fatal(err)
	}

	items, err := s.Incoming(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Identity != "a.txt" || items[1].Identity != "b.mp3" {
		t.Errorf("Incoming() = %+v", items)
	}
	if items[0].Kind != domain.KindUnsupported || items[1].Kind != domain.KindAudio {
		t.Errorf("kinds = %v, %v", items[0].Kind, items[1].Kind)
	}
}

package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/naming"
)

const recordExt = ".yaml"

// ErrNoRecord is returned when an identity has no metadata record yet.
var ErrNoRecord = errors.New("no metadata record")

func (s *implStore) Dirs() Dirs {
	return s.dirs
}

func (s *implStore) WorkPath(name string) string {
	return filepath.Join(s.dirs.Work, name)
}

func (s *implStore) Incoming(ctx context.Context) ([]domain.MediaItem, error) {
	entries, err := os.ReadDir(s.dirs.Incoming)
	if err != nil {
		return nil, fmt.Errorf("read incoming: %w", err)
	}

	var items []domain.MediaItem
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		item := domain.MediaItem{
			Identity: e.Name(),
			Origin:   domain.OriginUploaded,
			Kind:     media.Classify(e.Name()),
			Path:     filepath.Join(s.dirs.Incoming, e.Name()),
		}
		if rec, err := s.Record(ctx, e.Name()); err == nil && rec.Origin != "" {
			item.Origin = rec.Origin
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Identity < items[j].Identity })
	return items, nil
}

func (s *implStore) Stage(ctx context.Context, src string) (domain.MediaItem, error) {
	identity := naming.Normalize(filepath.Base(src))
	if identity == "" {
		return domain.MediaItem{}, fmt.Errorf("stage %s: name is empty after normalization", src)
	}

	dest := filepath.Join(s.dirs.Incoming, identity)
	if sameFile(src, dest) {
		s.logger.Info(ctx, "Already in incoming: %s", dest)
	} else {
		s.logger.Info(ctx, "Staging upload: %s -> %s", src, dest)
		if err := copyFile(src, dest); err != nil {
			return domain.MediaItem{}, fmt.Errorf("stage %s: %w", src, err)
		}
	}

	item := domain.MediaItem{
		Identity: identity,
		Origin:   domain.OriginUploaded,
		Kind:     media.Classify(identity),
		Path:     dest,
	}
	if err := s.Transition(ctx, item, StatusStaged); err != nil {
		return item, err
	}
	return item, nil
}

func (s *implStore) Adopt(ctx context.Context, src, identity string, origin domain.Origin) (domain.MediaItem, error) {
	dest := filepath.Join(s.dirs.Incoming, identity)
	s.logger.Info(ctx, "Moving to incoming folder: %s -> %s", src, dest)

	if err := moveFile(src, dest); err != nil {
		return domain.MediaItem{}, fmt.Errorf("move to incoming: %w", err)
	}

	item := domain.MediaItem{
		Identity: identity,
		Origin:   origin,
		Kind:     media.Classify(identity),
		Path:     dest,
	}
	if err := s.Transition(ctx, item, StatusStaged); err != nil {
		return item, err
	}
	return item, nil
}

func (s *implStore) Locate(ctx context.Context, identity string) (string, error) {
	path := filepath.Join(s.dirs.Incoming, identity)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", domain.ErrNotFound, path)
	}
	return path, nil
}

func (s *implStore) Transition(ctx context.Context, item domain.MediaItem, status Status) error {
	rec := s.recordFor(ctx, item)
	rec.Status = status
	if status == StatusLocating {
		rec.Attempts++
	}
	if status != StatusFailed {
		rec.FailedStage = ""
		rec.Error = ""
	}
	return s.save(rec)
}

func (s *implStore) Fail(ctx context.Context, item domain.MediaItem, stage domain.Stage, cause error) error {
	rec := s.recordFor(ctx, item)
	rec.Status = StatusFailed
	rec.FailedStage = stage
	if cause != nil {
		rec.Error = cause.Error()
	}
	return s.save(rec)
}

func (s *implStore) Finalize(ctx context.Context, item domain.MediaItem) error {
	if err := s.Transition(ctx, item, StatusFinalizing); err != nil {
		return err
	}

	src := filepath.Join(s.dirs.Incoming, item.Identity)
	dest := filepath.Join(s.dirs.Done, item.Identity)
	if fileExists(dest) {
		if err := s.setAsideDone(ctx, dest); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "Moving to done folder: %s -> %s", src, dest)

	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("move to done: %w", err)
	}

	return s.Transition(ctx, item, StatusDone)
}

// setAsideDone renames an earlier original that holds the same identity in
// done, so the new one can take its place without erasing it.
func (s *implStore) setAsideDone(ctx context.Context, path string) error {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	aside := filepath.Join(filepath.Dir(path), strings.TrimSuffix(base, ext)+"_"+naming.Token()+ext)
	s.logger.Warn(ctx, "An earlier %s is already in done, keeping it as %s", base, filepath.Base(aside))
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("set aside earlier original: %w", err)
	}
	return nil
}

func (s *implStore) Record(ctx context.Context, identity string) (Record, error) {
	data, err := os.ReadFile(s.recordPath(identity))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNoRecord, identity)
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse record %s: %w", identity, err)
	}
	return rec, nil
}

func (s *implStore) Records(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(s.dirs.State)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		rec, err := s.Record(ctx, strings.TrimSuffix(e.Name(), recordExt))
		if err != nil {
			s.logger.Warn(ctx, "Skipping unreadable record %s: %v", e.Name(), err)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Identity < records[j].Identity })
	return records, nil
}

func (s *implStore) Reconcile(ctx context.Context) error {
	records, err := s.Records(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		inIncoming := fileExists(filepath.Join(s.dirs.Incoming, rec.Identity))
		inDone := fileExists(filepath.Join(s.dirs.Done, rec.Identity))

		next := rec.Status
		switch {
		case rec.Status == StatusFinalizing && inDone && !inIncoming:
			next = StatusDone
		case rec.Status == StatusFinalizing || rec.Status.InFlight():
			if !inIncoming {
				s.logger.Warn(ctx, "Dropping record for vanished file: %s", rec.Identity)
				if err := os.Remove(s.recordPath(rec.Identity)); err != nil {
					s.logger.Warn(ctx, "Failed to remove record %s: %v", rec.Identity, err)
				}
				continue
			}
			next = StatusStaged
		case rec.Status == StatusFailed && !inIncoming && !inDone:
			s.logger.Warn(ctx, "Dropping failed record for vanished file: %s", rec.Identity)
			if err := os.Remove(s.recordPath(rec.Identity)); err != nil {
				s.logger.Warn(ctx, "Failed to remove record %s: %v", rec.Identity, err)
			}
			continue
		}

		if next == rec.Status {
			continue
		}
		s.logger.Warn(ctx, "Recovering interrupted item %s: %s -> %s", rec.Identity, rec.Status, next)
		rec.Status = next
		if err := s.save(rec); err != nil {
			return err
		}
	}

	return s.clearWork(ctx)
}

// clearWork removes intermediate files left by an interrupted run.
func (s *implStore) clearWork(ctx context.Context) error {
	entries, err := os.ReadDir(s.dirs.Work)
	if err != nil {
		return fmt.Errorf("read work: %w", err)
	}
	for _, e := range entries {
		path := filepath.Join(s.dirs.Work, e.Name())
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		} else {
			s.logger.Debug(ctx, "Cleaned up temp file: %s", path)
		}
	}
	return nil
}

func (s *implStore) recordFor(ctx context.Context, item domain.MediaItem) Record {
	rec, err := s.Record(ctx, item.Identity)
	if err != nil {
		rec = Record{Identity: item.Identity}
	}
	if item.Origin != "" {
		rec.Origin = item.Origin
	}
	if rec.Origin == "" {
		rec.Origin = domain.OriginUploaded
	}
	rec.Kind = media.Classify(item.Identity)
	return rec
}

// save writes the record through a temp file so a crash never leaves a
// truncated record behind.
func (s *implStore) save(rec Record) error {
	rec.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	path := s.recordPath(rec.Identity)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

func (s *implStore) recordPath(identity string) string {
	return filepath.Join(s.dirs.State, identity+recordExt)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// sameFile reports whether src and dst name the same existing file.
func sameFile(src, dst string) bool {
	a, err := os.Stat(src)
	if err != nil {
		return false
	}
	b, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write destination: %w", err)
	}
	return out.Close()
}

// moveFile renames src to dst, falling back to copy and remove across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

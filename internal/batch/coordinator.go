package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
)

func (c *implCoordinator) RunBatch(ctx context.Context, req Request) (*domain.BatchSummary, error) {
	language, err := config.ParseLanguage(string(req.Language))
	if err != nil {
		return nil, err
	}

	lock := flock.New(c.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn(ctx, "Failed to release run lock: %v", err)
		}
	}()

	if err := c.store.Reconcile(ctx); err != nil {
		return nil, fmt.Errorf("reconcile workspace: %w", err)
	}

	startTime := time.Now()
	summary := domain.NewBatchSummary()

	var fetched []domain.MediaItem
	if req.RemoteURL != "" {
		item, err := c.fetch(ctx, req.RemoteURL)
		if err != nil {
			c.logger.Error(ctx, "Failed to fetch %s: %v", req.RemoteURL, err)
			summary.Add(fetchFailure(req.RemoteURL, err))
		} else {
			fetched = append(fetched, item)
		}
	}

	incoming, err := c.store.Incoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incoming: %w", err)
	}

	// fetched items come last so they win over a staged file of the same identity
	candidates := media.Candidates(append(incoming, fetched...)...)
	c.logger.Info(ctx, "Run started: %d candidate(s), language %s", len(candidates), language.Name())

	for i, item := range candidates {
		c.logger.Info(ctx, "Processing item %d/%d: %s", i+1, len(candidates), item.Identity)
		summary.Add(c.processor.Process(ctx, item, string(language)))
	}

	c.logger.Info(ctx, "Run finished in %s: %d succeeded, %d failed (%s)",
		time.Since(startTime), summary.Succeeded(), summary.Failed(), summary.Classification())
	if summary.ToolMissing {
		c.logger.Error(ctx, "A required external tool is missing; install it and run again")
	}

	return summary, nil
}

// fetch downloads url into a scratch directory and moves the file into
// incoming under a tokenized identity.
func (c *implCoordinator) fetch(ctx context.Context, url string) (domain.MediaItem, error) {
	if c.fetcher == nil {
		return domain.MediaItem{}, fmt.Errorf("%w: remote fetching is not configured", domain.ErrFetch)
	}

	dir, err := os.MkdirTemp(c.store.Dirs().Work, "fetch-*")
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("create fetch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			c.logger.Warn(ctx, "Failed to cleanup fetch dir %s: %v", dir, err)
		}
	}()

	path, err := c.fetcher.Fetch(ctx, url, dir)
	if err != nil {
		return domain.MediaItem{}, err
	}

	identity := c.identify(filepath.Base(path))
	if !media.IsSupported(identity) {
		return domain.MediaItem{}, fmt.Errorf("%w: downloaded format %q is not supported", domain.ErrFetch, filepath.Ext(path))
	}

	return c.store.Adopt(ctx, path, identity, domain.OriginFetched)
}

func fetchFailure(url string, err error) domain.StageResult {
	var se *domain.StageError
	if !errors.As(err, &se) {
		err = &domain.StageError{Stage: domain.StageFetch, Err: err}
	}
	return domain.StageResult{
		Identity:     url,
		Origin:       domain.OriginFetched,
		Status:       domain.StatusFailed,
		FailingStage: domain.StageFetch,
		Err:          err,
	}
}

package fetcher

import "context"

// Fetcher downloads remote media to a local file.
type Fetcher interface {
	// Fetch downloads url into destDir and returns the path of the file.
	Fetch(ctx context.Context, url, destDir string) (string, error)
}

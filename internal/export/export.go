package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/domain"
)

func (e *implExporter) Export(ctx context.Context, summary *domain.BatchSummary, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	names := summary.ArtifactNames()
	e.logger.Info(ctx, "Exporting %d artifact(s) to %s", len(names), destDir)

	var written []string
	for _, name := range names {
		content, _ := summary.Artifact(name)

		path := filepath.Join(destDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		e.logger.Info(ctx, "Saved: %s", path)

		if !e.docx {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		docxPath := filepath.Join(destDir, stem+".docx")
		if err := artifactToDocx(stem, content, docxPath); err != nil {
			return written, fmt.Errorf("write %s: %w", filepath.Base(docxPath), err)
		}
		written = append(written, docxPath)
		e.logger.Info(ctx, "Saved: %s", docxPath)
	}

	return written, nil
}

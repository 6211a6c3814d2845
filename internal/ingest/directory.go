package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/common"
)

// ListPDFs returns the PDF files directly inside root, sorted by name.
// Subdirectories are not descended into; hidden files are skipped when
// skipHidden is set.
func ListPDFs(ctx context.Context, root string, skipHidden bool, logger *slog.Logger) ([]FileResult, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, fmt.Errorf("root path is required: %w", common.ErrInvalidInput)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, stats, fmt.Errorf("read dir %s: %w", root, common.ErrInvalidInput)
		}
		return nil, stats, fmt.Errorf("read dir %s: %w", root, err)
	}

	results := make([]FileResult, 0, len(entries))
	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}
		stats.Scanned++

		path := filepath.Join(root, d.Name())
		if d.IsDir() || (skipHidden && IsHidden(path)) {
			stats.Skipped++
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			stats.Skipped++
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("ingest.stat_failed", "path", path, "error", err)
			stats.Failed++
			continue
		}
		if !info.Mode().IsRegular() {
			stats.Skipped++
			continue
		}
		results = append(results, fileResult(path, info, ext))
		stats.Matched++
	}

	logger.Info("ingest.list.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/ingest"
)

// DefaultOutputName is the workbook written next to the input folder.
const DefaultOutputName = "papers_summary.xlsx"

// Exporter renders records as workbook bytes. *export.Service implements it.
type Exporter interface {
	RecordsXLSX(headers []string, rows [][]any) ([]byte, error)
}

// Batch processes every PDF of a folder, one after another.
type Batch struct {
	Processor  *Processor
	Exporter   Exporter
	SkipHidden bool
	Logger     *slog.Logger
}

func NewBatch(p *Processor, exporter Exporter, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{Processor: p, Exporter: exporter, SkipHidden: true, Logger: logger}
}

// Summary counts records by status.
type Summary struct {
	RunID    string
	Files    int
	OK       int
	Partial  int
	Failed   int
	Output   string
	Duration time.Duration
}

// Summarize counts records by status.
func Summarize(records []Record) Summary {
	s := Summary{Files: len(records)}
	for _, r := range records {
		switch r.Status {
		case constants.DocStatusOK:
			s.OK++
		case constants.DocStatusPartial:
			s.Partial++
		default:
			s.Failed++
		}
	}
	return s
}

// DefaultOutputPath is papers_summary.xlsx in the parent of folder.
func DefaultOutputPath(folder string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(folder)), DefaultOutputName)
}

// Run lists the PDFs directly inside folder, processes them in name order and
// writes the workbook to outPath once all are done. Records processed so far
// are returned with any listing, cancellation or export error; nothing is
// written unless every file was processed.
func (b *Batch) Run(ctx context.Context, folder, outPath string) ([]Record, error) {
	start := time.Now()
	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.New().String()
		ctx = common.WithRunID(ctx, runID)
	}
	if outPath == "" {
		outPath = DefaultOutputPath(folder)
	}
	log := b.Logger.With("run_id", runID, "folder", folder)

	files, stats, err := ingest.ListPDFs(ctx, folder, b.SkipHidden, b.Logger)
	if err != nil {
		log.Error("pipeline.batch.list_failed", "error", err)
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	log.Info("pipeline.batch.start", "files", stats.Matched, "output", outPath)

	records := make([]Record, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("pipeline.batch.canceled", "processed", len(records), "error", err)
			return records, err
		}
		log.Info("pipeline.batch.document", "index", i+1, "of", len(files), "path", f.Path)
		records = append(records, b.Processor.Process(ctx, f.Path))
	}

	data, err := b.Exporter.RecordsXLSX(constants.AsStringSlice(), Rows(records))
	if err != nil {
		log.Error("pipeline.batch.export_failed", "error", err)
		return records, fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Error("pipeline.batch.write_failed", "path", outPath, "error", err)
		return records, fmt.Errorf("write %s: %w: %w", outPath, common.ErrExport, err)
	}

	sum := Summarize(records)
	log.Info("pipeline.batch.ok",
		"files", sum.Files,
		"ok", sum.OK,
		"partial", sum.Partial,
		"failed", sum.Failed,
		"output", outPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

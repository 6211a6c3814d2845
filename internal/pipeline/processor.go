// Package pipeline runs text extraction and the field extractors over PDFs and
// collects one record per file.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
)

// Processor coordinates text extraction then the four field extractors.
type Processor struct {
	Logger *slog.Logger
	Text   *TextStage
	Fields *FieldsStage
}

func NewProcessor(logger *slog.Logger, text *TextStage, fields *FieldsStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Fields: fields}
}

// Process never fails: an unreadable file or failed model call still yields a
// record, with defaults and an explanation in its notes.
func (p *Processor) Process(ctx context.Context, path string) Record {
	rec, _, _ := p.Inspect(ctx, path)
	return rec
}

// Inspect is Process that also returns the intermediate document and
// per-extractor outcomes.
func (p *Processor) Inspect(ctx context.Context, path string) (Record, pdftext.RawDocument, FieldsResult) {
	start := time.Now()
	ctx = common.WithDocumentID(ctx, filepath.Base(path))
	log := p.Logger.With("path", path)
	if runID := common.RunIDFromContext(ctx); runID != "" {
		log = log.With("run_id", runID)
	}

	doc, status := p.Text.Run(ctx, path)
	if status == constants.DocStatusExtractFailed {
		log.Warn("pipeline.text.failed", "error", doc.Err)
	} else {
		log.Info("pipeline.text.ok", "method", doc.Method, "pages", doc.Pages, "chars", len(doc.Text))
	}

	res := p.Fields.Run(ctx, doc)
	rec := NewRecord(path, res)

	var pre []string
	if doc.Failed() {
		pre = append(pre, "text: "+doc.Err)
	}
	for _, w := range doc.Warnings {
		pre = append(pre, "text: "+w)
	}
	rec.Notes = append(pre, rec.Notes...)

	switch {
	case status == constants.DocStatusExtractFailed:
		rec.Status = status
	case len(res.Notes()) > 0:
		rec.Status = constants.DocStatusPartial
	default:
		rec.Status = constants.DocStatusOK
	}

	log.Info("pipeline.document.ok",
		"status", rec.Status,
		"notes", len(rec.Notes),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, doc, res
}

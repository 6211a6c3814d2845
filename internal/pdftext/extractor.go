// Package pdftext turns a PDF file into one raw text blob.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/common"
)

// Extraction methods recorded on RawDocument.Method.
const (
	MethodLibrary   = "pdf-text"
	MethodPdftotext = "pdftotext"
)

type Config struct {
	Pdftotext string // optional fallback binary; empty disables it
	MaxPages  int    // 0 = no limit
}

// RawDocument is the text of one PDF. It is produced once and never mutated
// afterwards; Err is set when the file could not be read, in which case Text
// is empty.
type RawDocument struct {
	Path     string
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
	Err      string
}

// Failed reports whether text extraction failed.
func (d RawDocument) Failed() bool { return d.Err != "" }

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxPages < 0 {
		cfg.MaxPages = 0
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner used for the pdftotext fallback.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract reads path and returns its normalized text. The returned error is
// also recorded on RawDocument.Err so callers can keep going with an empty
// document.
func (e *Extractor) Extract(ctx context.Context, path string) (RawDocument, error) {
	start := time.Now()
	doc := RawDocument{Path: path}

	fail := func(err error) (RawDocument, error) {
		err = fmt.Errorf("%w: %s: %v", common.ErrExtraction, filepath.Base(path), err)
		doc.Err = err.Error()
		doc.Text = ""
		doc.Duration = time.Since(start)
		e.logger.Warn("pdftext.extract.failed", "path", path, "error", err, "elapsed_ms", doc.Duration.Milliseconds())
		return doc, err
	}

	if constants.MapExtToFormat(filepath.Ext(path)) != constants.PDF {
		return fail(fmt.Errorf("unsupported extension %q", filepath.Ext(path)))
	}
	if st, err := os.Stat(path); err != nil {
		return fail(err)
	} else if st.IsDir() {
		return fail(errors.New("is a directory"))
	}

	if n, err := pageCount(path); err != nil {
		doc.Warnings = append(doc.Warnings, "page count: "+err.Error())
	} else {
		doc.Pages = n
	}

	text, pages, err := readWithLibrary(path, e.cfg.MaxPages)
	if err != nil {
		doc.Warnings = append(doc.Warnings, "pdf library: "+err.Error())
	} else {
		doc.Method = MethodLibrary
		if doc.Pages == 0 {
			doc.Pages = pages
		}
	}

	if strings.TrimSpace(text) == "" && e.cfg.Pdftotext != "" {
		alt, warn, altErr := e.pdfToText(ctx, path)
		doc.Warnings = append(doc.Warnings, warn...)
		if altErr == nil {
			text, err = alt, nil
			doc.Method = MethodPdftotext
		} else {
			doc.Warnings = append(doc.Warnings, "pdftotext: "+altErr.Error())
		}
	}
	if err != nil {
		return fail(err)
	}

	doc.Text = Normalize(text)
	doc.Duration = time.Since(start)
	if doc.Text == "" {
		doc.Warnings = append(doc.Warnings, "no extractable text")
	}

	e.logger.Info("pdftext.extract.ok",
		"path", path,
		"method", doc.Method,
		"pages", doc.Pages,
		"chars", len(doc.Text),
		"warnings", len(doc.Warnings),
		"elapsed_ms", doc.Duration.Milliseconds(),
	)
	return doc, nil
}

package pipeline

import (
	"context"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
)

// TextExtractor turns a PDF into text. *pdftext.Extractor implements it.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (pdftext.RawDocument, error)
}

// TextStage extracts a document's text once; a failure becomes part of the
// returned document instead of an error so the record is still produced.
type TextStage struct {
	TextExtractor TextExtractor
}

func NewTextStage(tx TextExtractor) *TextStage {
	return &TextStage{TextExtractor: tx}
}

func (s *TextStage) Run(ctx context.Context, path string) (pdftext.RawDocument, constants.DocStatus) {
	doc, err := s.TextExtractor.Extract(ctx, path)
	if doc.Path == "" {
		doc.Path = path
	}
	if err != nil {
		if doc.Err == "" {
			doc.Err = err.Error()
		}
		doc.Text = ""
		return doc, constants.DocStatusExtractFailed
	}
	return doc, constants.DocStatusOK
}

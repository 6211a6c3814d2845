package pipeline

import (
	"context"

	"github.com/joseph-ayodele/papers-extractor/internal/fields"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
)

// FieldExtractor is what the fields stage needs. *fields.Extractor implements it.
type FieldExtractor interface {
	Metadata(ctx context.Context, doc pdftext.RawDocument) fields.Metadata
	Theory(ctx context.Context, doc pdftext.RawDocument) fields.Theory
	Data(ctx context.Context, doc pdftext.RawDocument) fields.DataInfo
	Empirical(ctx context.Context, doc pdftext.RawDocument, f *fields.Findings) fields.Empirical
}

// FieldsResult holds the four extractor outputs for one document.
type FieldsResult struct {
	Metadata  fields.Metadata  `json:"metadata" yaml:"metadata"`
	Theory    fields.Theory    `json:"theory" yaml:"theory"`
	Data      fields.DataInfo  `json:"data" yaml:"data"`
	Empirical fields.Empirical `json:"empirical" yaml:"empirical"`
}

// Notes gathers the notes of all four extractors, in run order.
func (r FieldsResult) Notes() []string {
	var out []string
	out = append(out, r.Metadata.Notes...)
	out = append(out, r.Theory.Notes...)
	out = append(out, r.Data.Notes...)
	out = append(out, r.Empirical.Notes...)
	return out
}

type FieldsStage struct {
	Extractor FieldExtractor
}

func NewFieldsStage(fe FieldExtractor) *FieldsStage {
	return &FieldsStage{Extractor: fe}
}

// Run calls metadata, theory, data and empirical in that order; the empirical
// prompt is given the theory and data flags found before it.
func (s *FieldsStage) Run(ctx context.Context, doc pdftext.RawDocument) FieldsResult {
	var r FieldsResult
	r.Metadata = s.Extractor.Metadata(ctx, doc)
	r.Theory = s.Extractor.Theory(ctx, doc)
	r.Data = s.Extractor.Data(ctx, doc)
	r.Empirical = s.Extractor.Empirical(ctx, doc, &fields.Findings{
		HasTheoryModel: r.Theory.HasTheoryModel,
		HasDataSection: r.Data.HasDataSection,
	})
	return r
}

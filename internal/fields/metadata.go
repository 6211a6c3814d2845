package fields

import (
	"context"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

// Metadata is the bibliographic part of a record.
type Metadata struct {
	Title    string `json:"title" yaml:"title"`
	Authors  string `json:"authors" yaml:"authors"`
	Year     string `json:"year" yaml:"year"`
	Journal  string `json:"journal" yaml:"journal"`
	Abstract string `json:"abstract" yaml:"abstract"`
	Outcome  `yaml:",inline"`
}

var metadataTask = task{
	name:      "metadata",
	system:    metadataSystem,
	prompt:    metadataPrompt,
	chain:     section.Chain{Strategies: []section.Strategy{section.Prefix{MaxChars: 8000}}},
	maxTokens: 600,
	schema: llm.ObjectSchema(map[string]any{
		"title":    llm.StringProp(),
		"authors":  llm.TextProp(),
		"year":     llm.YearProp(),
		"journal":  llm.StringProp(),
		"abstract": llm.StringProp(),
	}, "title", "authors", "year", "journal", "abstract"),
	fields: llm.FieldSet{
		Allowed: []string{"title", "authors", "year", "journal", "abstract"},
		Renames: map[string]string{
			"author":           "authors",
			"publication_year": "year",
			"venue":            "journal",
		},
	},
}

// Metadata reads title, authors, year, journal and abstract from the first
// 8000 characters of the document.
func (e *Extractor) Metadata(ctx context.Context, doc pdftext.RawDocument) Metadata {
	m, out := e.run(ctx, metadataTask, doc, "")
	return Metadata{
		Title:    Text(m["title"]),
		Authors:  Text(m["authors"]),
		Year:     Year(m["year"]),
		Journal:  Text(m["journal"]),
		Abstract: Text(m["abstract"]),
		Outcome:  out,
	}
}

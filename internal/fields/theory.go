package fields

import (
	"context"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

// Theory says whether the introduction builds a theoretical model.
type Theory struct {
	HasTheoryModel int    `json:"introduction_has_theory_model" yaml:"introduction_has_theory_model"`
	Description    string `json:"theory_model_description" yaml:"theory_model_description"`
	Outcome        `yaml:",inline"`
}

var theoryTask = task{
	name:   "theory",
	system: theorySystem,
	prompt: theoryPrompt,
	chain: section.Chain{
		Strategies: []section.Strategy{
			section.Header{Keyword: "introduction", MaxChars: 3500},
			section.LeadingFraction{Fraction: 0.2, Split: section.IntroHeadings, MaxChars: 3500},
			section.Prefix{MaxChars: 3500},
		},
		MinLength: section.MinViable,
	},
	maxTokens: 300,
	schema: llm.ObjectSchema(map[string]any{
		"introduction_has_theory_model": llm.FlagProp(),
		"theory_model_description":      llm.TextProp(),
	}, "introduction_has_theory_model"),
	fields: llm.FieldSet{
		Allowed: []string{"introduction_has_theory_model", "theory_model_description"},
		Renames: map[string]string{
			"has_theory_model":  "introduction_has_theory_model",
			"description":       "theory_model_description",
			"model_description": "theory_model_description",
		},
	},
}

// Theory judges the introduction; without an introduction header it falls back
// to the opening fifth of the paper, then to its first 3500 characters.
func (e *Extractor) Theory(ctx context.Context, doc pdftext.RawDocument) Theory {
	m, out := e.run(ctx, theoryTask, doc, "")
	return Theory{
		HasTheoryModel: Truthy(m["introduction_has_theory_model"]),
		Description:    OptionalText(m["theory_model_description"]),
		Outcome:        out,
	}
}

package fields

import (
	"context"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

// Empirical holds the paper's main estimating equation.
type Empirical struct {
	Model   string `json:"empirical_model" yaml:"empirical_model"`
	Outcome `yaml:",inline"`
}

// Findings are the earlier flags the empirical prompt is told about. A nil
// *Findings sends the prompt without them.
type Findings struct {
	HasTheoryModel int
	HasDataSection int
}

// ExpectsModel reports whether a paper with these flags should state an
// empirical specification: no theory model but a data section.
func (f Findings) ExpectsModel() bool {
	return f.HasTheoryModel == 0 && f.HasDataSection == 1
}

var empiricalTask = task{
	name:   "empirical",
	system: empiricalSystem,
	prompt: empiricalPrompt,
	chain: section.Chain{
		Strategies: []section.Strategy{
			section.Header{Keyword: "results", MaxChars: 5000},
			section.Header{Keyword: "method", MaxChars: 5000},
			section.Prefix{MaxChars: 8000},
		},
	},
	maxTokens: 300,
	schema: llm.ObjectSchema(map[string]any{
		"empirical_model": llm.TextProp(),
	}, "empirical_model"),
	fields: llm.FieldSet{
		Allowed: []string{"empirical_model"},
		Renames: map[string]string{
			"model":    "empirical_model",
			"equation": "empirical_model",
		},
	},
}

// Empirical looks for the main regression equation in the results section,
// then the methods section, then the first 8000 characters. When the findings
// expect a model and none comes back, a note is recorded; the value is kept.
func (e *Extractor) Empirical(ctx context.Context, doc pdftext.RawDocument, f *Findings) Empirical {
	extra := ""
	if f != nil {
		extra = strings.NewReplacer(
			"{theory}", strconv.Itoa(f.HasTheoryModel),
			"{data}", strconv.Itoa(f.HasDataSection),
		).Replace(empiricalContext)
	}

	m, out := e.run(ctx, empiricalTask, doc, extra)
	res := Empirical{Model: Text(m["empirical_model"]), Outcome: out}

	if f != nil && f.ExpectsModel() && res.Model == "" && out.Result == llm.KindSuccess.String() {
		res.note("empirical", "no empirical model returned although introduction_has_theory_model=0 and has_data_section=1")
		e.logger.Warn("fields.empirical.policy_unmet", "path", doc.Path)
	}
	return res
}

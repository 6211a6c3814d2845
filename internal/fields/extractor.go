// Package fields turns a document's text into the per-paper fields of the
// summary table, one LLM call per group of fields.
package fields

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

// maxNoteRaw caps how much unparsed model output is copied into a note.
const maxNoteRaw = 500

// Invoker is the part of llm.Invoker the extractors use.
type Invoker interface {
	Invoke(ctx context.Context, call llm.Call) llm.Result
}

// Outcome describes how one extractor arrived at its fields.
type Outcome struct {
	Strategy string         `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	SpanLen  int            `json:"span_len" yaml:"span_len"`
	Called   bool           `json:"llm_called" yaml:"llm_called"`
	Result   string         `json:"llm_result,omitempty" yaml:"llm_result,omitempty"`
	Raw      map[string]any `json:"llm_raw,omitempty" yaml:"llm_raw,omitempty"`
	Notes    []string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// task is the fixed recipe of one extractor.
type task struct {
	name      string
	system    string
	prompt    string
	chain     section.Chain
	maxTokens int
	schema    map[string]any
	fields    llm.FieldSet
}

// Extractor runs the four field extractors against a shared Invoker.
type Extractor struct {
	invoker     Invoker
	model       string
	temperature float64
	logger      *slog.Logger
}

func NewExtractor(invoker Invoker, model string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{invoker: invoker, model: model, logger: logger}
}

// WithTemperature sets the sampling temperature of every call (default 0).
func (e *Extractor) WithTemperature(t float64) *Extractor {
	e.temperature = t
	return e
}

// run selects the span, calls the model and returns sanitized fields. A nil
// map means the defaults apply; the Outcome says why.
func (e *Extractor) run(ctx context.Context, t task, doc pdftext.RawDocument, extra string) (map[string]any, Outcome) {
	var out Outcome
	log := e.logger.With("task", t.name, "path", doc.Path)

	if strings.TrimSpace(doc.Text) == "" {
		log.Debug("fields.skip", "reason", "no_text")
		return nil, out
	}

	span, strategy := t.chain.Find(doc.Text)
	out.Strategy = strategy
	out.SpanLen = len([]rune(span))
	if span == "" {
		log.Info("fields.skip", "reason", "no_section")
		return nil, out
	}

	start := time.Now()
	res := e.invoker.Invoke(ctx, llm.Call{
		Name:        t.name,
		Prompt:      render(t.prompt, span) + extra,
		System:      t.system,
		Model:       e.model,
		MaxTokens:   t.maxTokens,
		Temperature: e.temperature,
	})
	out.Called = true
	out.Result = res.Kind.String()
	out.Raw = res.Map()

	switch res.Kind {
	case llm.KindCallFailure:
		out.note(t.name, "llm call failed: %v", res.Err)
		log.Warn("fields.llm_failed", "error", res.Err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, out
	case llm.KindParseFailure:
		out.note(t.name, "unparsed llm output: %s", clip(res.RawText, maxNoteRaw))
		log.Warn("fields.unparsed", "reply_len", len(res.RawText), "elapsed_ms", time.Since(start).Milliseconds())
		return nil, out
	}

	fields, changed := llm.SanitizeFields(res.Fields, t.fields, log)
	if err := llm.ValidateFields(t.schema, fields); err != nil {
		out.note(t.name, "schema: %s", firstLine(err.Error()))
		log.Warn("fields.schema_mismatch", "error", err)
	}
	log.Info("fields.ok",
		"strategy", strategy,
		"span_len", out.SpanLen,
		"sanitized", len(changed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, out
}

func (o *Outcome) note(task, format string, args ...any) {
	o.Notes = append(o.Notes, task+": "+fmt.Sprintf(format, args...))
}

func clip(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	return section.Truncate(s, n)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

package fields

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/testutil"
)

// fakeInvoker answers by call name and records every call.
type fakeInvoker struct {
	results map[string]llm.Result
	calls   []llm.Call
}

func (f *fakeInvoker) Invoke(_ context.Context, call llm.Call) llm.Result {
	f.calls = append(f.calls, call)
	if r, ok := f.results[call.Name]; ok {
		return r
	}
	return llm.CallFailure(errors.New("unexpected call " + call.Name))
}

func (f *fakeInvoker) call(t *testing.T, name string) llm.Call {
	t.Helper()
	for _, c := range f.calls {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s call recorded", name)
	return llm.Call{}
}

const paperText = `A Labor Capital Asset Pricing Model
Jane Doe, John Roe
Journal of Finance 2017

Abstract
We show that labor market frictions matter for asset prices.

1. Introduction
We build a general equilibrium model in which firms face search frictions when hiring workers. ` +
	`The model delivers a labor-augmented CAPM and we test it in the cross-section of returns.

2. Data
We use Compustat annual data on US public firms from 1990 to 2017 together with BLS employment figures.

3. Results
We estimate r_it = a + b*L_it + e_it and find strong effects.

4. Conclusion
Labor matters.`

func newDoc(text string) pdftext.RawDocument {
	return pdftext.RawDocument{Path: "/papers/a.pdf", Text: text}
}

func TestMetadata(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"metadata": llm.Success(map[string]any{
			"title":    " A Labor Capital Asset Pricing Model ",
			"author":   []any{"Jane Doe", "John Roe"},
			"year":     float64(2017),
			"journal":  "Journal of Finance",
			"abstract": "We show that labor market frictions matter.",
		}),
	}}
	e := NewExtractor(inv, "deepseek-chat", testutil.Logger())

	got := e.Metadata(context.Background(), newDoc(paperText))
	require.Equal(t, "A Labor Capital Asset Pricing Model", got.Title)
	require.Equal(t, "Jane Doe, John Roe", got.Authors)
	require.Equal(t, "2017", got.Year)
	require.Equal(t, "Journal of Finance", got.Journal)
	require.True(t, got.Called)
	require.Equal(t, "prefix:8000", got.Strategy)
	require.Empty(t, got.Notes)

	c := inv.call(t, "metadata")
	require.Equal(t, 600, c.MaxTokens)
	require.Equal(t, "deepseek-chat", c.Model)
	require.Zero(t, c.Temperature)
	require.Contains(t, c.Prompt, "Jane Doe, John Roe")
	require.NotContains(t, c.Prompt, contentPlaceholder)
}

func TestMetadata_PromptCappedAt8000Chars(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{"metadata": llm.Success(nil)}}
	e := NewExtractor(inv, "", testutil.Logger())

	text := strings.Repeat("x", 9000) + "TAIL"
	got := e.Metadata(context.Background(), newDoc(text))
	require.Equal(t, 8000, got.SpanLen)
	require.NotContains(t, inv.call(t, "metadata").Prompt, "TAIL")
}

func TestTheory_UsesIntroduction(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"theory": llm.Success(map[string]any{
			"introduction_has_theory_model": "Yes",
			"theory_model_description":      "a general equilibrium model with search frictions",
		}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Theory(context.Background(), newDoc(paperText))
	require.Equal(t, 1, got.HasTheoryModel)
	require.Equal(t, "a general equilibrium model with search frictions", got.Description)
	require.Equal(t, "header:introduction", got.Strategy)

	c := inv.call(t, "theory")
	require.Equal(t, 300, c.MaxTokens)
	require.Contains(t, c.Prompt, "search frictions when hiring workers")
	require.NotContains(t, c.Prompt, "Compustat")
}

func TestTheory_ShortTextSkipsCall(t *testing.T) {
	inv := &fakeInvoker{}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Theory(context.Background(), newDoc("Too short to judge."))
	require.Equal(t, 0, got.HasTheoryModel)
	require.False(t, got.Called)
	require.Empty(t, inv.calls)
}

func TestTheory_ParseFailureKeepsRawText(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"theory": llm.ParseFailure("I think\nthere is a model."),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Theory(context.Background(), newDoc(paperText))
	require.Equal(t, 0, got.HasTheoryModel)
	require.Empty(t, got.Description)
	require.Equal(t, []string{"theory: unparsed llm output: I think there is a model."}, got.Notes)
	require.Equal(t, map[string]any{llm.RawTextKey: "I think\nthere is a model."}, got.Raw)
}

func TestTheory_NoHeadingsUsesFixedPrefix(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"theory": llm.Success(map[string]any{"introduction_has_theory_model": 0}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Theory(context.Background(), newDoc(strings.Repeat("word ", 2000)))
	require.True(t, got.Called)
	require.Equal(t, "prefix:3500", got.Strategy)
	require.Equal(t, 3500, got.SpanLen)
}

func TestData(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"data": llm.Success(map[string]any{
			"has_data_section":    float64(1),
			"data_section_text":   "We use Compustat annual data",
			"data_mentions_labor": "true",
			"labor_related_text":  "BLS employment figures",
			"data_country":        []any{"USA"},
			"if_us_data_level":    "Firm",
			"if_firm_level":       float64(1),
			"firm_sample_period":  "1990-2017",
			"firm_data_frequency": "Annual",
		}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Data(context.Background(), newDoc(paperText))
	require.Equal(t, 1, got.HasDataSection)
	require.Equal(t, 1, got.DataMentionsLabor)
	require.Equal(t, "USA", got.DataCountry)
	require.Equal(t, "firm", got.USDataLevel)
	require.Equal(t, "1", got.FirmLevel)
	require.Equal(t, "1990-2017", got.FirmSamplePeriod)
	require.Equal(t, "annual", got.FirmDataFrequency)
	require.Empty(t, got.Notes)

	c := inv.call(t, "data")
	require.Equal(t, 800, c.MaxTokens)
	require.Contains(t, c.Prompt, "Compustat annual data")
	require.NotContains(t, c.Prompt, "r_it = a")
}

func TestData_NoSectionNoCall(t *testing.T) {
	inv := &fakeInvoker{}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Data(context.Background(), newDoc("Introduction\nA purely theoretical paper.\nConclusion\nDone."))
	require.Equal(t, DataInfo{}, got)
	require.Empty(t, inv.calls)
}

func TestData_CallFailureGivesDefaultsAndNote(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"data": llm.CallFailure(errors.New("401 unauthorized")),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Data(context.Background(), newDoc(paperText))
	require.Equal(t, 0, got.HasDataSection)
	require.Equal(t, 0, got.DataMentionsLabor)
	require.Empty(t, got.DataCountry)
	require.Equal(t, []string{"data: llm call failed: 401 unauthorized"}, got.Notes)
	require.Equal(t, map[string]any{llm.ErrorKey: "401 unauthorized"}, got.Raw)
}

func TestData_SchemaMismatchIsANote(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"data": llm.Success(map[string]any{"data_country": "USA"}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Data(context.Background(), newDoc(paperText))
	require.Equal(t, "USA", got.DataCountry)
	require.Len(t, got.Notes, 1)
	require.True(t, strings.HasPrefix(got.Notes[0], "data: schema: "))
}

func TestEmpirical_PrefersResults(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"empirical": llm.Success(map[string]any{"empirical_model": "r_it = a + b*L_it + e_it"}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Empirical(context.Background(), newDoc(paperText), &Findings{HasTheoryModel: 1, HasDataSection: 1})
	require.Equal(t, "r_it = a + b*L_it + e_it", got.Model)
	require.Equal(t, "header:results", got.Strategy)

	c := inv.call(t, "empirical")
	require.Equal(t, 300, c.MaxTokens)
	require.Contains(t, c.Prompt, "introduction_has_theory_model = 1, has_data_section = 1.")
	require.NotContains(t, c.Prompt, "Labor matters.")
}

func TestEmpirical_FallsBackToMethodThenPrefix(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{"empirical": llm.Success(nil)}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Empirical(context.Background(), newDoc("Intro\nblah\nMethodology\nWe run OLS.\nConclusion\nok"), nil)
	require.Equal(t, "header:method", got.Strategy)

	got = e.Empirical(context.Background(), newDoc("no headers in this text at all"), nil)
	require.Equal(t, "prefix:8000", got.Strategy)
}

func TestEmpirical_PolicyNote(t *testing.T) {
	inv := &fakeInvoker{results: map[string]llm.Result{
		"empirical": llm.Success(map[string]any{"empirical_model": ""}),
	}}
	e := NewExtractor(inv, "", testutil.Logger())

	got := e.Empirical(context.Background(), newDoc(paperText), &Findings{HasTheoryModel: 0, HasDataSection: 1})
	require.Empty(t, got.Model)
	require.Len(t, got.Notes, 1)
	require.Contains(t, got.Notes[0], "no empirical model returned")

	got = e.Empirical(context.Background(), newDoc(paperText), &Findings{HasTheoryModel: 1, HasDataSection: 1})
	require.Empty(t, got.Notes)
}

func TestEmptyDocumentMakesNoCalls(t *testing.T) {
	inv := &fakeInvoker{}
	e := NewExtractor(inv, "", testutil.Logger())
	doc := pdftext.RawDocument{Path: "/papers/broken.pdf", Err: "text extraction failed"}

	require.Equal(t, Metadata{}, e.Metadata(context.Background(), doc))
	require.Equal(t, Theory{}, e.Theory(context.Background(), doc))
	require.Equal(t, DataInfo{}, e.Data(context.Background(), doc))
	require.Equal(t, Empirical{}, e.Empirical(context.Background(), doc, &Findings{HasDataSection: 1}))
	require.Empty(t, inv.calls)
}

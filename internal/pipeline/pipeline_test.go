package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/papers-extractor/constants"
	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/export"
	"github.com/joseph-ayodele/papers-extractor/internal/fields"
	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/testutil"
)

type fakeInvoker struct {
	results map[string]llm.Result
	calls   []llm.Call
}

func (f *fakeInvoker) Invoke(_ context.Context, call llm.Call) llm.Result {
	f.calls = append(f.calls, call)
	if r, ok := f.results[call.Name]; ok {
		return r
	}
	return llm.CallFailure(errors.New("no answer for " + call.Name))
}

type fakeText map[string]string

func (f fakeText) Extract(_ context.Context, path string) (pdftext.RawDocument, error) {
	text, ok := f[filepath.Base(path)]
	if !ok {
		err := errors.New("broken.pdf: malformed xref")
		return pdftext.RawDocument{Path: path, Err: err.Error()}, err
	}
	return pdftext.RawDocument{Path: path, Text: text, Pages: 1, Method: pdftext.MethodLibrary}, nil
}

const paper = `Firms and Workers
Jane Doe

1. Introduction
We document new facts about hiring at public firms and explain them with a simple reduced-form approach.

2. Data
Compustat annual data on US firms, 1990-2017, merged with employment counts.

3. Results
We estimate y_it = a + b x_it + e_it.`

func answers() map[string]llm.Result {
	return map[string]llm.Result{
		"metadata": llm.Success(map[string]any{
			"title": "Firms and Workers", "authors": "Jane Doe", "year": "2019", "journal": "", "abstract": "",
		}),
		"theory": llm.Success(map[string]any{
			"introduction_has_theory_model": "no", "theory_model_description": "",
		}),
		"data": llm.Success(map[string]any{
			"has_data_section": "yes", "data_section_text": "Compustat annual data", "data_mentions_labor": true,
			"labor_related_text": "employment counts", "data_country": "USA", "if_us_data_level": "FIRM",
			"if_firm_level": 1, "firm_sample_period": "1990-2017", "firm_data_frequency": "Annual",
		}),
		"empirical": llm.Success(map[string]any{"empirical_model": "y_it = a + b x_it + e_it"}),
	}
}

func newProcessor(tx TextExtractor, inv fields.Invoker) *Processor {
	log := testutil.Logger()
	return NewProcessor(log, NewTextStage(tx), NewFieldsStage(fields.NewExtractor(inv, "test-model", log)))
}

func TestProcess_MergesAllExtractors(t *testing.T) {
	inv := &fakeInvoker{results: answers()}
	p := newProcessor(fakeText{"a.pdf": paper}, inv)

	rec := p.Process(context.Background(), "/in/a.pdf")
	require.Equal(t, constants.DocStatusOK, rec.Status)
	require.Equal(t, "/in/a.pdf", rec.Path)
	require.Equal(t, "Firms and Workers", rec.Title)
	require.Equal(t, "2019", rec.Year)
	require.Equal(t, 0, rec.HasTheoryModel)
	require.Equal(t, 1, rec.HasDataSection)
	require.Equal(t, 1, rec.DataMentionsLabor)
	require.Equal(t, "firm", rec.USDataLevel)
	require.Equal(t, "1", rec.FirmLevel)
	require.Equal(t, "annual", rec.FirmDataFrequency)
	require.Equal(t, "y_it = a + b x_it + e_it", rec.EmpiricalModel)
	require.Empty(t, rec.Notes)

	names := make([]string, 0, len(inv.calls))
	for _, c := range inv.calls {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"metadata", "theory", "data", "empirical"}, names)
	require.Contains(t, inv.calls[3].Prompt, "introduction_has_theory_model = 0, has_data_section = 1.")
}

func TestProcess_FailuresBecomeNotes(t *testing.T) {
	res := answers()
	res["theory"] = llm.ParseFailure("not json")
	delete(res, "data")
	inv := &fakeInvoker{results: res}
	p := newProcessor(fakeText{"a.pdf": paper}, inv)

	rec := p.Process(context.Background(), "/in/a.pdf")
	require.Equal(t, constants.DocStatusPartial, rec.Status)
	require.Equal(t, "Firms and Workers", rec.Title)
	require.Equal(t, 0, rec.HasDataSection)
	require.Equal(t, []string{
		"theory: unparsed llm output: not json",
		"data: llm call failed: no answer for data",
	}, rec.Notes)
	require.Equal(t, "theory: unparsed llm output: not json | data: llm call failed: no answer for data", rec.Row()[18])
}

func TestProcess_UnreadableFile(t *testing.T) {
	inv := &fakeInvoker{results: answers()}
	p := newProcessor(fakeText{}, inv)

	rec := p.Process(context.Background(), "/in/broken.pdf")
	require.Equal(t, constants.DocStatusExtractFailed, rec.Status)
	require.Equal(t, "/in/broken.pdf", rec.Path)
	require.Empty(t, rec.Title)
	require.Zero(t, rec.HasTheoryModel)
	require.Equal(t, []string{"text: broken.pdf: malformed xref"}, rec.Notes)
	require.Empty(t, inv.calls)
}

func TestRecordRow_MatchesColumns(t *testing.T) {
	rec := Record{Path: "p", Title: "t", HasDataSection: 1, EmpiricalModel: "m", Notes: []string{"a", "b"}}
	row := rec.Row()
	cols := constants.AsStringSlice()
	require.Len(t, row, len(cols))

	byName := map[string]any{}
	for i, c := range cols {
		byName[c] = row[i]
	}
	require.Equal(t, "p", byName[string(constants.ColPath)])
	require.Equal(t, "t", byName[string(constants.ColTitle)])
	require.Equal(t, 1, byName[string(constants.ColHasDataSection)])
	require.Equal(t, 0, byName[string(constants.ColHasTheoryModel)])
	require.Equal(t, "m", byName[string(constants.ColEmpiricalModel)])
	require.Equal(t, "a | b", byName[string(constants.ColExtractionNotes)])
	require.Equal(t, "", byName[string(constants.ColFirmLevel)])
}

func TestBatchRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "papers")
	require.NoError(t, os.Mkdir(in, 0o755))
	testutil.WritePDF(t, in, "a.pdf", "Firms and Workers", "Jane Doe", "Introduction", "We document new facts.")
	testutil.WritePDF(t, in, "b.pdf", "Another Paper", "Data", "Census records.")
	testutil.WriteFile(t, in, "c.pdf", []byte("this is not a pdf at all"))
	testutil.WriteFile(t, in, "readme.txt", []byte("ignore me"))

	log := testutil.Logger()
	inv := &fakeInvoker{results: answers()}
	p := NewProcessor(log,
		NewTextStage(pdftext.NewExtractor(pdftext.Config{}, log)),
		NewFieldsStage(fields.NewExtractor(inv, "test-model", log)),
	)
	b := NewBatch(p, export.NewService(log), log)

	records, err := b.Run(common.WithRunID(context.Background(), "run-1"), in, "")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, filepath.Join(in, "a.pdf"), records[0].Path)
	require.Equal(t, filepath.Join(in, "b.pdf"), records[1].Path)
	require.Equal(t, filepath.Join(in, "c.pdf"), records[2].Path)

	broken := records[2]
	require.Equal(t, constants.DocStatusExtractFailed, broken.Status)
	require.Empty(t, broken.Title)
	require.Zero(t, broken.HasDataSection)
	require.NotEmpty(t, broken.Notes)
	require.True(t, strings.HasPrefix(broken.Notes[0], "text: "))

	out := filepath.Join(dir, DefaultOutputName)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, constants.AsStringSlice(), rows[0])
	require.Equal(t, filepath.Join(in, "c.pdf"), rows[3][0])

	sum := Summarize(records)
	require.Equal(t, 3, sum.Files)
	require.Equal(t, 1, sum.Failed)
}

func TestBatchRun_CanceledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.pdf", []byte("%PDF-1.4"))
	out := filepath.Join(dir, "out.xlsx")

	log := testutil.Logger()
	p := newProcessor(fakeText{"a.pdf": paper}, &fakeInvoker{results: answers()})
	b := NewBatch(p, export.NewService(log), log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Run(ctx, dir, out)
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestBatchRun_MissingFolder(t *testing.T) {
	log := testutil.Logger()
	b := NewBatch(newProcessor(fakeText{}, &fakeInvoker{}), export.NewService(log), log)
	_, err := b.Run(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDefaultOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("/data", DefaultOutputName), DefaultOutputPath("/data/papers/"))
}

func TestRecordRow_FlagsAreZeroOrOne(t *testing.T) {
	inv := &fakeInvoker{results: answers()}
	p := newProcessor(fakeText{"a.pdf": paper, "b.pdf": ""}, inv)

	for _, path := range []string{"/in/a.pdf", "/in/b.pdf", "/in/missing.pdf"} {
		row := p.Process(context.Background(), path).Row()
		for i, c := range constants.AsStringSlice() {
			if !constants.IsFlag(constants.Column(c)) {
				continue
			}
			v, ok := row[i].(int)
			require.True(t, ok, "%s in %s", c, path)
			require.Contains(t, []int{0, 1}, v, "%s in %s", c, path)
		}
	}
}

package pipeline

import (
	"strings"

	"github.com/joseph-ayodele/papers-extractor/constants"
)

// noteSep joins notes inside the extraction_notes cell.
const noteSep = " | "

// Record is one row of the summary table.
type Record struct {
	Path              string   `json:"path" yaml:"path"`
	Title             string   `json:"title" yaml:"title"`
	Authors           string   `json:"authors" yaml:"authors"`
	Year              string   `json:"year" yaml:"year"`
	Journal           string   `json:"journal" yaml:"journal"`
	Abstract          string   `json:"abstract" yaml:"abstract"`
	HasTheoryModel    int      `json:"introduction_has_theory_model" yaml:"introduction_has_theory_model"`
	TheoryDescription string   `json:"theory_model_description" yaml:"theory_model_description"`
	HasDataSection    int      `json:"has_data_section" yaml:"has_data_section"`
	DataSectionText   string   `json:"data_section_text" yaml:"data_section_text"`
	DataMentionsLabor int      `json:"data_mentions_labor" yaml:"data_mentions_labor"`
	LaborRelatedText  string   `json:"labor_related_text" yaml:"labor_related_text"`
	DataCountry       string   `json:"data_country" yaml:"data_country"`
	USDataLevel       string   `json:"if_us_data_level" yaml:"if_us_data_level"`
	FirmLevel         string   `json:"if_firm_level" yaml:"if_firm_level"`
	FirmSamplePeriod  string   `json:"firm_sample_period" yaml:"firm_sample_period"`
	FirmDataFrequency string   `json:"firm_data_frequency" yaml:"firm_data_frequency"`
	EmpiricalModel    string   `json:"empirical_model" yaml:"empirical_model"`
	Notes             []string `json:"extraction_notes,omitempty" yaml:"extraction_notes,omitempty"`

	Status constants.DocStatus `json:"status" yaml:"status"`
}

// NewRecord merges the stage outputs; anything an extractor left out keeps
// its zero value ("" or 0).
func NewRecord(path string, r FieldsResult) Record {
	return Record{
		Path:              path,
		Title:             r.Metadata.Title,
		Authors:           r.Metadata.Authors,
		Year:              r.Metadata.Year,
		Journal:           r.Metadata.Journal,
		Abstract:          r.Metadata.Abstract,
		HasTheoryModel:    r.Theory.HasTheoryModel,
		TheoryDescription: r.Theory.Description,
		HasDataSection:    r.Data.HasDataSection,
		DataSectionText:   r.Data.DataSectionText,
		DataMentionsLabor: r.Data.DataMentionsLabor,
		LaborRelatedText:  r.Data.LaborRelatedText,
		DataCountry:       r.Data.DataCountry,
		USDataLevel:       r.Data.USDataLevel,
		FirmLevel:         r.Data.FirmLevel,
		FirmSamplePeriod:  r.Data.FirmSamplePeriod,
		FirmDataFrequency: r.Data.FirmDataFrequency,
		EmpiricalModel:    r.Empirical.Model,
		Notes:             r.Notes(),
	}
}

// Row returns the record's cells in constants.AsStringSlice order.
func (r Record) Row() []any {
	return []any{
		r.Path,
		r.Title,
		r.Authors,
		r.Year,
		r.Journal,
		r.Abstract,
		r.HasTheoryModel,
		r.TheoryDescription,
		r.HasDataSection,
		r.DataSectionText,
		r.DataMentionsLabor,
		r.LaborRelatedText,
		r.DataCountry,
		r.USDataLevel,
		r.FirmLevel,
		r.FirmSamplePeriod,
		r.FirmDataFrequency,
		r.EmpiricalModel,
		strings.Join(r.Notes, noteSep),
	}
}

// Rows converts records for export.
func Rows(records []Record) [][]any {
	out := make([][]any, len(records))
	for i, r := range records {
		out[i] = r.Row()
	}
	return out
}

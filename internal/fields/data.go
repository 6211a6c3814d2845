package fields

import (
	"context"

	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

// DataInfo describes the paper's data section.
type DataInfo struct {
	HasDataSection    int    `json:"has_data_section" yaml:"has_data_section"`
	DataSectionText   string `json:"data_section_text" yaml:"data_section_text"`
	DataMentionsLabor int    `json:"data_mentions_labor" yaml:"data_mentions_labor"`
	LaborRelatedText  string `json:"labor_related_text" yaml:"labor_related_text"`
	DataCountry       string `json:"data_country" yaml:"data_country"`
	USDataLevel       string `json:"if_us_data_level" yaml:"if_us_data_level"`
	FirmLevel         string `json:"if_firm_level" yaml:"if_firm_level"`
	FirmSamplePeriod  string `json:"firm_sample_period" yaml:"firm_sample_period"`
	FirmDataFrequency string `json:"firm_data_frequency" yaml:"firm_data_frequency"`
	Outcome           `yaml:",inline"`
}

var dataTask = task{
	name:      "data",
	system:    dataSystem,
	prompt:    dataPrompt,
	chain:     section.Chain{Strategies: []section.Strategy{section.Header{Keyword: "data", MaxChars: 6000}}},
	maxTokens: 800,
	schema: llm.ObjectSchema(map[string]any{
		"has_data_section":    llm.FlagProp(),
		"data_section_text":   llm.TextProp(),
		"data_mentions_labor": llm.FlagProp(),
		"labor_related_text":  llm.TextProp(),
		"data_country":        llm.TextProp(),
		"if_us_data_level":    llm.StringProp(),
		"if_firm_level":       llm.FlagProp(),
		"firm_sample_period":  llm.TextProp(),
		"firm_data_frequency": llm.StringProp(),
	}, "has_data_section", "data_mentions_labor"),
	fields: llm.FieldSet{
		Allowed: []string{
			"has_data_section", "data_section_text", "data_mentions_labor", "labor_related_text",
			"data_country", "if_us_data_level", "if_firm_level", "firm_sample_period", "firm_data_frequency",
		},
		Renames: map[string]string{
			"country":        "data_country",
			"data_countries": "data_country",
			"us_data_level":  "if_us_data_level",
			"firm_level":     "if_firm_level",
			"sample_period":  "firm_sample_period",
			"data_frequency": "firm_data_frequency",
		},
	},
}

// Data reads the section headed "data". A paper without one gets an empty
// record and no model call.
func (e *Extractor) Data(ctx context.Context, doc pdftext.RawDocument) DataInfo {
	m, out := e.run(ctx, dataTask, doc, "")
	return DataInfo{
		HasDataSection:    Truthy(m["has_data_section"]),
		DataSectionText:   OptionalText(m["data_section_text"]),
		DataMentionsLabor: Truthy(m["data_mentions_labor"]),
		LaborRelatedText:  OptionalText(m["labor_related_text"]),
		DataCountry:       Text(m["data_country"]),
		USDataLevel:       Lower(m["if_us_data_level"]),
		FirmLevel:         TriState(m["if_firm_level"]),
		FirmSamplePeriod:  OptionalText(m["firm_sample_period"]),
		FirmDataFrequency: Lower(m["firm_data_frequency"]),
		Outcome:           out,
	}
}

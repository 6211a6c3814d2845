package constants

// Column is a header of the exported summary table.
type Column string

const (
	ColPath              Column = "path"
	ColTitle             Column = "title"
	ColAuthors           Column = "authors"
	ColYear              Column = "year"
	ColJournal           Column = "journal"
	ColAbstract          Column = "abstract"
	ColHasTheoryModel    Column = "introduction_has_theory_model"
	ColTheoryDescription Column = "theory_model_description"
	ColHasDataSection    Column = "has_data_section"
	ColDataSectionText   Column = "data_section_text"
	ColDataMentionsLabor Column = "data_mentions_labor"
	ColLaborRelatedText  Column = "labor_related_text"
	ColDataCountry       Column = "data_country"
	ColUSDataLevel       Column = "if_us_data_level"
	ColFirmLevel         Column = "if_firm_level"
	ColFirmSamplePeriod  Column = "firm_sample_period"
	ColFirmDataFrequency Column = "firm_data_frequency"
	ColEmpiricalModel    Column = "empirical_model"
	ColExtractionNotes   Column = "extraction_notes"
)

// allColumns is the fixed export order.
var allColumns = []Column{
	ColPath,
	ColTitle,
	ColAuthors,
	ColYear,
	ColJournal,
	ColAbstract,
	ColHasTheoryModel,
	ColTheoryDescription,
	ColHasDataSection,
	ColDataSectionText,
	ColDataMentionsLabor,
	ColLaborRelatedText,
	ColDataCountry,
	ColUSDataLevel,
	ColFirmLevel,
	ColFirmSamplePeriod,
	ColFirmDataFrequency,
	ColEmpiricalModel,
	ColExtractionNotes,
}

// AsStringSlice returns the column headers in export order.
func AsStringSlice() []string {
	result := make([]string, len(allColumns))
	for i, c := range allColumns {
		result[i] = string(c)
	}
	return result
}

// IsFlag reports whether the column holds a 0/1 value.
func IsFlag(c Column) bool {
	switch c {
	case ColHasTheoryModel, ColHasDataSection, ColDataMentionsLabor:
		return true
	}
	return false
}

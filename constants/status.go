package constants

// DocStatus summarizes how a single document went through the pipeline.
type DocStatus string

// Stable values (used in logs and the batch summary).
const (
	DocStatusOK            DocStatus = "OK"             // every extractor returned parsed JSON
	DocStatusPartial       DocStatus = "PARTIAL"        // at least one extractor fell back to defaults
	DocStatusExtractFailed DocStatus = "EXTRACT_FAILED" // text extraction failed; row holds defaults
)

package llm

import (
	"encoding/json"
	"strings"
)

// ParseJSON recovers a JSON object from free-form model output. It tries, in
// order: the whole trimmed text when no brace pair is present, the span from
// the first '{' to the last '}', and that span with every single quote turned
// into a double quote. Anything else is a ParseFailure carrying text as given.
func ParseJSON(text string) Result {
	trimmed := strings.TrimSpace(text)
	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")

	if first < 0 || last < 0 || last < first {
		if m, ok := decodeObject(trimmed); ok {
			return Success(m)
		}
		return ParseFailure(text)
	}

	candidate := trimmed[first : last+1]
	if m, ok := decodeObject(candidate); ok {
		return Success(m)
	}
	if m, ok := decodeObject(strings.ReplaceAll(candidate, "'", `"`)); ok {
		return Success(m)
	}
	return ParseFailure(text)
}

// decodeObject accepts exactly one JSON object and nothing else.
func decodeObject(s string) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

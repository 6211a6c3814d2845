package fields

import (
	"fmt"
	"regexp"
	"strings"
)

var reYear = regexp.MustCompile(`\b\d{4}\b`)

// Truthy maps the yes/no spellings models produce to 1 or 0: "1", "true" and
// "yes" (any case, surrounding space ignored), JSON true and the number 1 are 1.
// Everything else, including absent values, is 0.
func Truthy(v any) int {
	if v == nil {
		return 0
	}
	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(v))) {
	case "1", "true", "yes":
		return 1
	}
	return 0
}

// Text coerces a model value into a cell string. Lists are joined with ", ".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := Text(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// OptionalText is Text, except a bare "0" (what models put in skipped text
// fields) becomes empty.
func OptionalText(v any) string {
	s := Text(v)
	if s == "0" {
		return ""
	}
	return s
}

// Lower is Text lower-cased.
func Lower(v any) string { return strings.ToLower(Text(v)) }

// Year keeps the first four-digit number in v, or "".
func Year(v any) string {
	return reYear.FindString(Text(v))
}

// TriState is "1" or "0" for a recognizable yes/no answer and "" otherwise.
func TriState(v any) string {
	switch strings.ToLower(Text(v)) {
	case "1", "true", "yes":
		return "1"
	case "0", "false", "no":
		return "0"
	}
	return ""
}

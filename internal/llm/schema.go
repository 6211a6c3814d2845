package llm

// ObjectSchema returns a JSON-Schema object (draft 2020-12 subset) as a generic
// map. Extra properties are allowed since models often add commentary keys.
func ObjectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// StringProp is a string or null.
func StringProp() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

// FlagProp accepts the spellings models use for yes/no answers.
func FlagProp() map[string]any {
	return map[string]any{"type": []any{"integer", "boolean", "string", "null"}}
}

// TextProp is a string, a list of strings or null.
func TextProp() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": []any{"string", "number", "null"}},
			map[string]any{"type": "array", "items": map[string]any{"type": []any{"string", "number"}}},
		},
	}
}

// YearProp is a four-digit year as string or number, or empty.
func YearProp() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string", "pattern": `^(\d{4})?$`},
			map[string]any{"type": "integer", "minimum": 1000, "maximum": 9999},
			map[string]any{"type": "null"},
		},
	}
}

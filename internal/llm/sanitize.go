package llm

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// FieldSet describes the keys an extractor expects back from the model.
type FieldSet struct {
	Allowed []string          // keys kept; everything else is dropped
	Renames map[string]string // synonym -> canonical key
}

// SanitizeFields returns a copy of m with synonyms renamed to their canonical
// key (an existing canonical value wins), unknown keys removed and string
// values trimmed. The second return lists what was changed, for logs and notes.
func SanitizeFields(m map[string]any, fs FieldSet, logger *slog.Logger) (map[string]any, []string) {
	if logger == nil {
		logger = slog.Default()
	}
	out := maps.Clone(m)
	if out == nil {
		out = map[string]any{}
	}
	var dropped []string

	for _, from := range slices.Sorted(maps.Keys(fs.Renames)) {
		to := fs.Renames[from]
		v, ok := out[from]
		if !ok {
			continue
		}
		if _, exists := out[to]; !exists {
			out[to] = v
		}
		delete(out, from)
		dropped = append(dropped, from+"->"+to)
	}

	if len(fs.Allowed) > 0 {
		allowed := make(map[string]struct{}, len(fs.Allowed))
		for _, k := range fs.Allowed {
			allowed[k] = struct{}{}
		}
		for _, k := range slices.Sorted(maps.Keys(out)) {
			if _, ok := allowed[k]; !ok {
				delete(out, k)
				dropped = append(dropped, k+"(unknown)")
			}
		}
	}

	for k, v := range out {
		if s, ok := v.(string); ok {
			out[k] = strings.TrimSpace(s)
		}
	}

	if len(dropped) > 0 {
		logger.Debug("llm.fields.sanitize", "changed", dropped)
	}
	return out, dropped
}

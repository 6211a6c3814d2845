package llm

// Kind tags which variant of a Result holds.
type Kind int

const (
	KindSuccess Kind = iota
	KindParseFailure
	KindCallFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindParseFailure:
		return "parse_failure"
	case KindCallFailure:
		return "call_failure"
	default:
		return "unknown"
	}
}

// Keys of the mapping view returned by Result.Map for the failure variants.
const (
	RawTextKey = "__raw_text__"
	ErrorKey   = "__error__"
)

// Result is the outcome of parsing or invoking: exactly one of Fields (success),
// RawText (parse failure) or Err (call failure) is meaningful, as told by Kind.
type Result struct {
	Kind    Kind
	Fields  map[string]any
	RawText string
	Err     error
}

func Success(fields map[string]any) Result {
	if fields == nil {
		fields = map[string]any{}
	}
	return Result{Kind: KindSuccess, Fields: fields}
}

func ParseFailure(raw string) Result {
	return Result{Kind: KindParseFailure, RawText: raw}
}

func CallFailure(err error) Result {
	return Result{Kind: KindCallFailure, Err: err}
}

// Map renders the result as a flat mapping. Failures carry a single
// RawTextKey or ErrorKey entry.
func (r Result) Map() map[string]any {
	switch r.Kind {
	case KindSuccess:
		return r.Fields
	case KindParseFailure:
		return map[string]any{RawTextKey: r.RawText}
	default:
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return map[string]any{ErrorKey: msg}
	}
}

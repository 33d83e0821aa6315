package models

// Value is a JSON-like structured mapping as produced by encoding/json:
// nested values are maps, []any slices, strings, float64 numbers, bools or
// nil. It is the payload type of configuration documents and registry
// defaults.
type Value = map[string]any

// DeepCopyValue returns a copy of v that shares no mutable state with the
// original. Used wherever a caller receives a value that must not alias
// stored state (registry defaults, file-store scans).
func DeepCopyValue(v Value) Value {
	if v == nil {
		return Value{}
	}
	return deepCopyAny(v).(Value)
}

func deepCopyAny(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = deepCopyAny(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = deepCopyAny(item)
		}
		return out
	default:
		// scalars (string, float64, bool, nil) are immutable
		return value
	}
}

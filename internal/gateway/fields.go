package gateway

// Typed accessors for raw document fields. The remote store hands numbers
// back as int64 or float64 depending on how they were written, so callers
// decode through these instead of type-asserting directly.

func StringField(f Fields, key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

func BoolField(f Fields, key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

func IntField(f Fields, key string) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func FloatField(f Fields, key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func StringsField(f Fields, key string) []string {
	switch v := f[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

package tools

import "fmt"

// Argument helpers. Tool arguments arrive as decoded JSON, so numbers are
// float64 and everything optional may simply be missing.

func argString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func optString(args map[string]any, key string) string {
	s, _ := argString(args, key)
	return s
}

func argInt(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func argList(args map[string]any, key string) ([]any, bool) {
	v, ok := args[key].([]any)
	return v, ok
}

func missing(key string) string {
	return fmt.Sprintf("Error: missing or invalid %q", key)
}

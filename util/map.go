package util

import "fmt"

func GetMapValue[T any](m map[string]any, key string, defaultValue T) T {
	if m[key] == nil {
		return defaultValue
	}

	if value, ok := m[key].(T); ok {
		return value
	}

	return defaultValue
}

// GetMapString returns m[key] rendered as a string. Non-string scalars such as
// booleans and numbers are formatted with %v; absent keys report ok=false.
func GetMapString(m map[string]any, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	if raw == nil {
		return "", true
	}
	if s := GetMapValue(m, key, ""); s != "" {
		return s, true
	}
	return fmt.Sprintf("%v", raw), true
}

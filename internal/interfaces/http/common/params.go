package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt parses raw into a positive integer, falling back to
// def on empty, malformed, or non-positive input.
func ParsePositiveInt(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def, false
	}
	return value, true
}

// ParseFloat parses raw into a float64, reporting whether the value was
// present and well-formed.
func ParseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

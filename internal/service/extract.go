package service

import (
	"encoding/json"
	"strings"
)

// Tolerant JSON extraction shared by the question-array and result-object
// paths. Models wrap JSON in prose and code fences often enough that a
// strict parse alone is not usable: try the whole string first, then the
// substring between the first and last top-level delimiter.

// ExtractJSONObject pulls a JSON object out of raw model output. Returns
// false when no parseable object can be found; it never returns an error.
func ExtractJSONObject(raw string, out interface{}) bool {
	return extractJSON(raw, "{", "}", out)
}

// ExtractJSONArray pulls a JSON array out of raw model output. Returns
// false when no parseable array can be found; it never returns an error.
func ExtractJSONArray(raw string, out interface{}) bool {
	return extractJSON(raw, "[", "]", out)
}

func extractJSON(raw, open, closing string, out interface{}) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, open) {
		if err := json.Unmarshal([]byte(trimmed), out); err == nil {
			return true
		}
	}

	first := strings.Index(raw, open)
	last := strings.LastIndex(raw, closing)
	if first == -1 || last == -1 || last <= first {
		return false
	}

	return json.Unmarshal([]byte(raw[first:last+1]), out) == nil
}

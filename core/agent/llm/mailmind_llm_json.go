package llm

import "strings"

// Models regularly wrap JSON answers in markdown fences or prepend
// commentary despite instructions not to. These helpers recover the
// payload before unmarshalling.

// stripJSONFences removes markdown code fences from a model response.
func stripJSONFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost {...} span, or "" if none.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// extractJSONArray returns the outermost [...] span, or "" if none.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

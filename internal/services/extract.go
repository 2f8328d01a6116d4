package services

import "strings"

// The external service is instructed to reply with JSON but is not
// contractually guaranteed to return only JSON, so replies are scanned
// for the first top-level object or array span and everything around it
// is discarded. Both helpers are pure functions of their input.

// extractJSONObject returns the first top-level {...} span in text, or
// "" if none exists.
func extractJSONObject(text string) string {
	text = stripCodeFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// extractJSONArray returns the first top-level [...] span in text, or
// "" if none exists.
func extractJSONArray(text string) string {
	text = stripCodeFences(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// stripCodeFences removes markdown code fences the model tends to wrap
// JSON payloads in.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

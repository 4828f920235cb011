package llm

import "strings"

// CleanJSONBlock strips the markdown fencing Gemini sometimes wraps around
// JSON output, even in JSON response mode, and returns the bare JSON text.
// Unfenced responses pass through untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	body = strings.TrimPrefix(body, "json")
	// Other language tags ("javascript") sit alone on the opening fence
	// line; drop that line when it cannot be JSON itself.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := strings.TrimSpace(body[:nl])
		if tag == "" || (len(tag) < 20 && !strings.ContainsAny(tag, " {")) {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

package gemini

import "strings"

const systemPrompt = `You are a helpful assistant that extracts structured data from academic course descriptions.
You always respond with valid JSON only, without any markdown formatting or additional explanation.`

// extractJSON strips markdown code fences the model sometimes wraps around its
// JSON payload.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// isNullResponse reports whether the model explicitly answered "no match".
func isNullResponse(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "null")
}

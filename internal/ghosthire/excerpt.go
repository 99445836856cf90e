package ghosthire

import "strings"

// excerpt returns the first limit characters of a job description for debug
// logs, marking the cut with "...".
func excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if limit <= 0 || text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

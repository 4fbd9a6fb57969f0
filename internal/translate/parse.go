package translate

import (
	"encoding/json"
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(.+?)\s*$`)

// parseBatch recovers exactly n translated strings from a model reply,
// never failing on a shape mismatch. The second return reports whether every
// slot was recovered faithfully; the replicate fallback loses per-item
// fidelity and returns false.
func parseBatch(content string, n int) ([]string, bool) {
	content = strings.TrimSpace(content)
	body := stripCodeFence(content)

	var array []string
	if err := json.Unmarshal([]byte(body), &array); err == nil && len(array) == n {
		for i := range array {
			array[i] = strings.TrimSpace(array[i])
		}
		return array, true
	}

	matches := numberedLine.FindAllStringSubmatch(body, -1)
	if len(matches) == n {
		items := make([]string, n)
		for i, match := range matches {
			items[i] = strings.TrimSpace(match[1])
		}
		return items, true
	}

	// Shape mismatch. A single-slot batch takes the whole body; larger
	// batches replicate the raw content so the caller still receives
	// exactly n items.
	if n == 1 {
		return []string{content}, true
	}
	items := make([]string, n)
	for i := range items {
		items[i] = content
	}
	return items, false
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
		body = strings.TrimLeft(body, " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

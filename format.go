package docidx

import (
	"fmt"
	"strings"
)

// FormatEntries formats entries for display or LLM context.
// Each entry is headed by its title, falling back to its location, and
// entries are separated by blank lines. Empty texts are omitted.
func FormatEntries(entries []*SearchEntry) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		header := e.Title
		if header == "" {
			header = e.Location
		}
		part := fmt.Sprintf("## %s [%s]\nLocation: %s", header, e.Category, e.Location)
		if text := strings.TrimSpace(e.Text); text != "" {
			part += "\n" + text
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "\n\n")
}

// Snippet returns the first line of text truncated to max runes.
func Snippet(text string, max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	runes := []rune(line)
	if max > 0 && len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return line
}

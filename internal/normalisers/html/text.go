package html

import (
	"html"
	"regexp"
	"strings"
)

var (
	droppedElements = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	comments        = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBoundary   = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)(\s[^>]*)?>|<(br|hr)\s*/?>`)
	anyTag          = regexp.MustCompile(`<[^>]+>`)
	spaceRun        = regexp.MustCompile(`[ \t]+`)
)

// Text returns the readable text of an HTML fragment, one block per line.
func Text(content string) string {
	content = droppedElements.ReplaceAllString(content, "")
	content = comments.ReplaceAllString(content, "")
	content = blockBoundary.ReplaceAllString(content, "\n")
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = spaceRun.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Excerpt returns the first maxRunes characters of the text on a single
// line, cut at a word boundary when possible. maxRunes <= 0 means no limit.
func Excerpt(content string, maxRunes int) string {
	text := strings.Join(strings.Fields(Text(content)), " ")
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}

	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

package assist

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/resume-builder/internal/types"
)

// strict removes every tag; text content is kept.
var strict = bluemonday.StrictPolicy()

// htmlTag matches elements a model plausibly emits. Other angle-bracket text
// such as "<Rust>" or "Dear <Hiring Manager>" is content, not markup.
var htmlTag = regexp.MustCompile(`(?i)</?(?:a|b|br|code|div|em|h[1-6]|hr|i|li|ol|p|pre|script|span|strong|style|table|td|th|tr|u|ul)(?:\s[^<>]*)?/?>`)

// cleanText strips HTML elements from generated text and trims surrounding space.
// Text without recognised elements is only trimmed.
func cleanText(s string) string {
	tags := htmlTag.FindAllStringIndex(s, -1)
	if len(tags) == 0 {
		return strings.TrimSpace(s)
	}

	// escape the '<' outside real elements so the policy keeps it as text
	var sb strings.Builder
	prev := 0
	for _, loc := range tags {
		sb.WriteString(strings.ReplaceAll(s[prev:loc[0]], "<", "&lt;"))
		sb.WriteString(s[loc[0]:loc[1]])
		prev = loc[1]
	}
	sb.WriteString(strings.ReplaceAll(s[prev:], "<", "&lt;"))

	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(sb.String())))
}

// SplitKeywords splits a comma-separated keyword list into trimmed, non-empty tokens.
func SplitKeywords(s string) []string { return types.SkillList(s) }

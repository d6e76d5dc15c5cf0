package conversation

import (
	"regexp"
	"strings"
)

// placeholderTitles are titles that still count as "untitled": the
// conditional auto-title step only runs while the session carries one of
// these (or an empty title).
var placeholderTitles = []string{"New Consultation", "New Chat", "string"}

// leadingMarkup matches enumeration prefixes the model tends to emit
// despite instructions ("1. ", "- ", "* ").
var leadingMarkup = regexp.MustCompile(`^[\d.\-*\s]+`)

// CleanTitle strips list markup and quote characters from a generated
// title. An empty result means "keep the existing title".
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return ""
	}

	title = leadingMarkup.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, `"`, "")
	title = strings.ReplaceAll(title, "'", "")
	return strings.TrimSpace(title)
}

// IsPlaceholderTitle reports whether the session still needs an
// auto-generated title.
func IsPlaceholderTitle(title string) bool {
	if strings.TrimSpace(title) == "" {
		return true
	}
	for _, placeholder := range placeholderTitles {
		if title == placeholder {
			return true
		}
	}
	return false
}

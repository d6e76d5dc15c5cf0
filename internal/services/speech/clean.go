// Package speech synthesizes chat answers to audio via an external TTS
// collaborator.
package speech

import (
	"regexp"
	"strings"
)

var (
	markdownLink  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markupChars   = regexp.MustCompile("[*#_`~]")
	repeatedDots  = regexp.MustCompile(`\.(\s*\.)+`)
	repeatedSpace = regexp.MustCompile(`\s{2,}`)
)

// CleanForSpeech strips chat markdown so the synthesized audio does not
// read formatting characters aloud. Newlines become sentence breaks.
func CleanForSpeech(text string) string {
	text = markdownLink.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", ". ")
	text = markupChars.ReplaceAllString(text, "")
	text = repeatedDots.ReplaceAllString(text, ".")
	text = repeatedSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

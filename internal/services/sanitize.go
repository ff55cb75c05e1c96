package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sentencePolicy = bluemonday.StrictPolicy()

// SanitizeSentence strips any markup from an authored lesson sentence,
// leaving the plain bilingual pair text. Lesson files are hand-edited
// and occasionally carry pasted HTML fragments. Entities are unescaped
// afterwards so the "->" pair delimiter survives sanitization.
func SanitizeSentence(input string) string {
	return strings.TrimSpace(html.UnescapeString(sentencePolicy.Sanitize(input)))
}

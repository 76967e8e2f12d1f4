package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// CensorText masks every whole-word, case-insensitive occurrence of a listed
// word with asterisks of the same length.
func CensorText(text string, words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 || text == "" {
		return text
	}

	re, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat("*", utf8.RuneCountInString(match))
	})
}

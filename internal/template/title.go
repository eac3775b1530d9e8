package template

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitlePrefixes are the lead-ins stripped from an instruction to form a task
// title, checked in this order.
var TitlePrefixes = []string{
	"Create a task for ",
	"I need to ",
	"Build a ",
	"Set up ",
	"Implement ",
}

// ExtractTitle strips the first matching lead-in (case-insensitive) and
// capitalizes the rest: first character upper case, remainder lower case.
func ExtractTitle(instruction string) string {
	title := instruction
	for _, prefix := range TitlePrefixes {
		if hasPrefixFold(title, prefix) {
			title = title[len(prefix):]
			break
		}
	}
	return capitalize(strings.TrimSpace(title))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

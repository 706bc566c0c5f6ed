// Package textclean normalizes raw post text before it is sent for scoring.
package textclean

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9 \n.]`)
	urlToken        = regexp.MustCompile(`http\S+`)
	labelPrefix     = regexp.MustCompile(`\w+:\s?`)
)

// Clean strips retweet markers, spacing around periods, anything outside
// [a-zA-Z0-9 \n.], URL tokens and "word:" prefixes. A single pass can expose
// new matches (removing "RT" from "RRTT" yields "RT"), so passes repeat until
// the text stops changing. Every step only deletes, which bounds the loop and
// makes Clean idempotent.
func Clean(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(x string) string {
	x = strings.ReplaceAll(x, "RT", "")
	x = strings.ReplaceAll(x, " .", ".")
	x = strings.ReplaceAll(x, ". ", ".")
	x = disallowedChars.ReplaceAllString(x, "")
	x = urlToken.ReplaceAllString(x, "")
	x = labelPrefix.ReplaceAllString(x, "")
	return x
}

// Aggregate cleans every text and joins them, closing each with a period.
// No texts yields the empty string.
func Aggregate(texts []string) string {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(Clean(t))
		b.WriteByte('.')
	}
	return b.String()
}

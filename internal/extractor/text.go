package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// collapseSpace trims s and folds every whitespace run into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nodeText returns the trimmed text content of the selection.
func nodeText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func truncate(s string, max int) string {
	if charLen(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// sentences splits text on terminal punctuation and keeps the trimmed pieces
// whose length lies strictly between min and max.
func sentences(text string, min, max int) []string {
	var out []string
	for _, s := range sentenceBreak.Split(text, -1) {
		s = strings.TrimSpace(s)
		if n := charLen(s); n > min && n < max {
			out = append(out, s)
		}
	}
	return out
}

func joinSentences(s []string) string {
	return strings.Join(s, ". ") + "."
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

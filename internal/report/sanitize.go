package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var punctuation = strings.NewReplacer(
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`,
	"\u2018", "'", "\u2019", "'", "\u201a", "'",
	"\u2026", "...",
	"\u2014", "--",
	"\u2013", "-",
	"\u00a0", " ",
)

var (
	removeControls = runes.Remove(runes.In(unicode.Cc))
	blankExotic    = runes.Map(func(r rune) rune {
		if (r >= 0x2000 && r <= 0x206F) || (r >= 0x2E00 && r <= 0x2E7F) {
			return ' '
		}
		return r
	})
)

// Sanitize makes text safe for a document body: typographic quotes, dashes,
// ellipses and non-breaking spaces become ASCII, control characters are
// dropped, the remaining general punctuation blocks become spaces, and
// whitespace is collapsed.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = punctuation.Replace(text)
	text, _, _ = transform.String(removeControls, text)
	text, _, _ = transform.String(blankExotic, text)
	return strings.Join(strings.Fields(text), " ")
}

// sanitizeBlock sanitizes multi-line text line by line so that removing line
// breaks never glues words together.
func sanitizeBlock(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if s := Sanitize(line); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

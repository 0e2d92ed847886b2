package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"typography", "\u201cHello\u201d \u2014 it\u2019s\u2026 fine \u2013 ok", `"Hello" -- it's... fine - ok`},
		{"control characters removed", "a\u0000b\u0007c\u0085d", "abcd"},
		{"nbsp and exotic spaces", "here\u00a0now and\u2e3athen", "here now and then"},
		{"whitespace collapsed", "  multiple   spaces\t\n ", "multiple spaces"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeBlock_KeepsWordsApart(t *testing.T) {
	assert.Equal(t, "First paragraph. Second paragraph.", sanitizeBlock("First paragraph.\n\nSecond paragraph.\n"))
}

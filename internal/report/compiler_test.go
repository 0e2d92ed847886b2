package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/newsscrape-service/internal/entity"
)

var compiledAt = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

// slice returns the text a 1-indexed UTF-16 range covers.
func slice(text string, r entity.TextRange) string {
	units := utf16.Encode([]rune(text))
	return string(utf16.Decode(units[r.Start-1 : r.End-1]))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "News Scrape Report - Tuesday, March 5, 2024 • 02:07:09 PM", Title(compiledAt))
}

func TestCompile_SingleArticleRanges(t *testing.T) {
	articles := []entity.Article{{
		Source:  "Reuters",
		Title:   "Fed Raises Rates",
		URL:     "https://example.com/a",
		Content: "The central bank raised rates.",
	}}

	req := Compile(articles, compiledAt)

	wantText := "News Scraper Report\nDate: Tuesday, March 5, 2024 02:07:09 PM\n\n" +
		"Total Articles: 1\n\n" +
		"--- Reuters (1) ---\n\n" +
		"1. Fed Raises Rates\n" +
		"URL: https://example.com/a\n\n" +
		"Content:\nThe central bank raised rates.\n\n" +
		strings.Repeat("=", 72) + "\n\n"
	assert.Equal(t, wantText, req.Text)

	require.Len(t, req.Bold, 1)
	require.Len(t, req.Links, 1)
	assert.Equal(t, entity.TextRange{Start: 103, End: 123}, req.Bold[0])
	assert.Equal(t, entity.TextRange{Start: 128, End: 149, URL: "https://example.com/a"}, req.Links[0])
	assert.Equal(t, "1. Fed Raises Rates\n", slice(req.Text, req.Bold[0]))
	assert.Equal(t, "https://example.com/a", slice(req.Text, req.Links[0]))
	assert.Equal(t, Title(compiledAt), req.Title)
}

func TestCompile_GroupsBySourceInFirstSeenOrder(t *testing.T) {
	articles := []entity.Article{
		{Source: "BBC", Title: "Emoji 😀 headline", URL: "https://bbc.example/1", Content: "one"},
		{Source: "CNN", Title: "Second story", URL: "https://cnn.example/1", Content: "two\n\nparagraphs"},
		{Source: "BBC", Title: "Third “quoted” story", URL: "https://bbc.example/2", Content: "three"},
	}

	req := Compile(articles, compiledAt)

	bbc := strings.Index(req.Text, "--- BBC (2) ---")
	cnn := strings.Index(req.Text, "--- CNN (1) ---")
	require.NotEqual(t, -1, bbc)
	require.NotEqual(t, -1, cnn)
	assert.Less(t, bbc, cnn)
	assert.Contains(t, req.Text, "Content:\ntwo paragraphs\n\n")

	require.Len(t, req.Bold, 3)
	assert.Equal(t, "1. Emoji 😀 headline\n", slice(req.Text, req.Bold[0]))
	assert.Equal(t, "2. Third \"quoted\" story\n", slice(req.Text, req.Bold[1]))
	assert.Equal(t, "1. Second story\n", slice(req.Text, req.Bold[2]))

	require.Len(t, req.Links, 3)
	for i, want := range []string{"https://bbc.example/1", "https://bbc.example/2", "https://cnn.example/1"} {
		assert.Equal(t, want, slice(req.Text, req.Links[i]))
		assert.Equal(t, want, req.Links[i].URL)
	}
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 3, UTF16Len("abc"))
	assert.Equal(t, 2, UTF16Len("😀"))
	assert.Equal(t, 1, UTF16Len("é"))
}

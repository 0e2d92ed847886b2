package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingBase = "https://news.example.com/"

func TestExtractLinks_ConfidentSelector(t *testing.T) {
	doc := mustDoc(t, articleList(8, "Markets rally after central bank decision %d"))

	links := ExtractLinks(doc, mustURL(t, listingBase), []string{""})

	require.Len(t, links, 8)
	assert.Equal(t, "https://news.example.com/world/story-0", links[0].URL)
	assert.Equal(t, "Markets rally after central bank decision 0", links[0].Title)
	assert.Equal(t, "https://news.example.com/world/story-7", links[7].URL)
}

func TestExtractLinks_CapsAtThirty(t *testing.T) {
	doc := mustDoc(t, articleList(40, "Another long enough headline number %d"))

	links := ExtractLinks(doc, mustURL(t, listingBase), nil)

	require.Len(t, links, MaxLinksPerPass)
	assert.Equal(t, "https://news.example.com/world/story-29", links[29].URL)
}

func TestExtractLinks_UniqueURLs(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<article><a href="/news/one">First headline about elections today</a></article>
		<article><a href="/news/one">Same link with a different headline</a></article>
		<article><a href="/news/one#comments">Comments anchor for the first headline</a></article>
		<article><a href="/news/two">Second headline about elections today</a></article>
	</body></html>`)

	links := ExtractLinks(doc, mustURL(t, listingBase), nil)

	seen := map[string]bool{}
	for _, l := range links {
		assert.False(t, seen[l.URL], "duplicate %s", l.URL)
		seen[l.URL] = true
	}
	assert.Len(t, links, 2)
}

func TestExtractLinks_RejectsNavigationAndBadTitles(t *testing.T) {
	long := strings.Repeat("x", 301)
	doc := mustDoc(t, `<html><body>
		<a href="/news/about">About us and our editorial mission</a>
		<a href="/news/sub">Subscribe to our daily briefing now</a>
		<a href="/news/short">Too short</a>
		<a href="/news/long">`+long+`</a>
		<a href="javascript:void(0)">Script link with a long enough title</a>
		<a href="mailto:desk@example.com">Email the news desk about a story</a>
		<a href="/news/ok">Lawmakers agree on new budget framework</a>
	</body></html>`)

	links := ExtractLinks(doc, mustURL(t, listingBase), nil)

	require.Len(t, links, 1)
	assert.Equal(t, "https://news.example.com/news/ok", links[0].URL)
	for _, l := range links {
		n := len([]rune(l.Title))
		assert.GreaterOrEqual(t, n, 15)
		assert.LessOrEqual(t, n, 300)
	}
}

func TestExtractLinks_KeywordFilter(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="/news/a">Inflation cools as prices ease in spring</a>
		<a href="/news/b">Local team wins championship in overtime</a>
		<a href="/news/c">Central bank weighs INFLATION outlook again</a>
	</body></html>`)
	base := mustURL(t, listingBase)

	filtered := ExtractLinks(doc, base, []string{"inflation"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "https://news.example.com/news/a", filtered[0].URL)
	assert.Equal(t, "https://news.example.com/news/c", filtered[1].URL)

	assert.Equal(t, ExtractLinks(doc, base, nil), ExtractLinks(doc, base, []string{""}))
	assert.Len(t, ExtractLinks(doc, base, []string{}), 3)
}

func TestExtractLinks_ArticleHeuristic(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div><a href="/x">Extraordinarily long-winded headline</a></div>
		<div class="headline-wrap"><a href="/y">Extraordinarily long-winded caption</a></div>
		<div><a href="/z"><h3>Bold</h3> statement regarding policy</a></div>
		<div><a href="/w">Four words in headline here</a></div>
	</body></html>`)

	links := ExtractLinks(doc, mustURL(t, listingBase), nil)

	var urls []string
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	assert.Equal(t, []string{
		"https://news.example.com/y",
		"https://news.example.com/z",
		"https://news.example.com/w",
	}, urls)
}

func TestNormalizeKeywords(t *testing.T) {
	assert.Equal(t, []string{""}, NormalizeKeywords(nil))
	assert.Equal(t, []string{""}, NormalizeKeywords([]string{"  ", ""}))
	assert.Equal(t, []string{"fed", "rates"}, NormalizeKeywords([]string{" Fed", "rates", "FED "}))
}

func TestMatchesKeywords(t *testing.T) {
	assert.True(t, MatchesKeywords("anything", nil))
	assert.True(t, MatchesKeywords("anything", []string{""}))
	assert.True(t, MatchesKeywords("Fed Raises Rates", []string{"rates"}))
	assert.False(t, MatchesKeywords("Fed Raises Rates", []string{"election"}))
}

package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// bodySelector is either a container whose <p> descendants are read, or a
// direct selector whose matches are the paragraphs themselves.
type bodySelector struct {
	css    string
	direct bool
	// min overrides the strategy's paragraph minimum when non-zero.
	min int
}

func container(css string) bodySelector { return bodySelector{css: css} }
func direct(css string) bodySelector    { return bodySelector{css: css, direct: true} }

// siteStrategy extracts body text for one publisher's layout.
type siteStrategy struct {
	name      string
	domains   []string
	selectors []bodySelector

	// paragraphs must be longer than minChars
	minChars      int
	minParagraphs int
	markers       []string
	foldedMarkers []string
	placeholder   string

	containerFallback func(c *goquery.Selection) (string, bool)
	pageFallback      func(doc *goquery.Document) (string, bool)
}

func (s *siteStrategy) matches(domain string) bool {
	for _, d := range s.domains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

func (s *siteStrategy) keep(text string) bool {
	if charLen(text) <= s.minChars || containsAny(text, s.markers) {
		return false
	}
	return !containsAny(strings.ToLower(text), s.foldedMarkers)
}

func (s *siteStrategy) paragraphs(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if t := nodeText(p); s.keep(t) {
			out = append(out, t)
		}
	})
	return out
}

func (s *siteStrategy) extract(doc *goquery.Document) (string, bool) {
	for _, bs := range s.selectors {
		min := s.minParagraphs
		if bs.min > 0 {
			min = bs.min
		}

		if bs.direct {
			if ps := s.paragraphs(doc.Find(bs.css)); len(ps) >= min {
				return strings.Join(ps, "\n\n"), true
			}
			continue
		}

		c := doc.Find(bs.css).First()
		if c.Length() == 0 {
			continue
		}
		if ps := s.paragraphs(c.Find("p")); len(ps) >= min {
			return strings.Join(ps, "\n\n"), true
		}
		if s.containerFallback != nil {
			if body, ok := s.containerFallback(c); ok {
				return body, true
			}
		}
	}
	if s.pageFallback != nil {
		return s.pageFallback(doc)
	}
	return "", false
}

// siteStrategies is checked in order; the first whose domain pattern is a
// substring of the page host wins.
var siteStrategies = []*siteStrategy{
	{
		name:    "washingtonpost",
		domains: []string{"washingtonpost.com"},
		selectors: []bodySelector{
			container(".article-body"),
			container(`[data-qa="article-body"]`),
			container(".content-wrap .article-body"),
			container(".story-body"),
			container(".paywall"),
			container(".article-content"),
			container(".pb-f-article-body"),
			container("article .content"),
			{css: "main article div p", direct: true, min: 2},
			{css: ".font-copy p", direct: true, min: 2},
			{css: ".gray-darkest p", direct: true, min: 2},
		},
		minChars:          30,
		minParagraphs:     1,
		markers:           []string{"Subscribe", "Sign in", "$1 for", "washingtonpost.com"},
		foldedMarkers:     []string{"advertisement"},
		placeholder:       "Washington Post article detected but content may be behind paywall or require subscription.",
		containerFallback: wapoContentDivs,
		pageFallback:      wapoBodySentences,
	},
	{
		name:          "foxnews",
		domains:       []string{"foxnews.com"},
		selectors:     []bodySelector{container(".article-body"), container(".article-content"), container(".article-text"), container(".content-body"), container(".speakable")},
		minChars:      50,
		minParagraphs: 2,
		markers:       []string{"window.foxstrike", "console.error", "OutKick"},
		placeholder:   "Fox News article found but content extraction failed.",
	},
	{
		name:          "wsj",
		domains:       []string{"wsj.com", "wallstreetjournal.com"},
		selectors:     []bodySelector{container(`[name="articleBody"]`), container(".article-content"), container(".wsj-article-body"), container(`[data-module="ArticleBody"]`), container(".paywall")},
		minChars:      30,
		minParagraphs: 1,
		markers:       []string{"Subscribe", "Sign In"},
		placeholder:   "WSJ article found but may require subscription.",
	},
	{
		name:          "bloomberg",
		domains:       []string{"bloomberg.com"},
		selectors:     []bodySelector{container(".body-content"), container(`[data-module="BodyText"]`), container(".fence-body"), container(".article-body")},
		minChars:      30,
		minParagraphs: 1,
		markers:       []string{"Bloomberg Terminal", "Subscribe"},
		placeholder:   "Bloomberg article found but may require subscription.",
	},
	{
		name:          "npr",
		domains:       []string{"npr.org"},
		selectors:     []bodySelector{container("#storytext"), container(".storytext"), container(`[data-testid="transcript"]`), container(".story-text")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "NPR content found but extraction failed.",
	},
	{
		name:          "aljazeera",
		domains:       []string{"aljazeera.com"},
		selectors:     []bodySelector{container(".wysiwyg"), container(".article-body"), container("[data-article-body]"), container(".main-article-body")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "Al Jazeera article found but extraction failed.",
	},
	{
		name:          "cnn",
		domains:       []string{"cnn.com"},
		selectors:     []bodySelector{direct(".zn-body__paragraph"), direct(".zn-body-text"), direct(".article-body")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "CNN article found but extraction failed.",
	},
	{
		name:          "reuters",
		domains:       []string{"reuters.com"},
		selectors:     []bodySelector{container(`[data-testid="paragraph"]`), container(".ArticleBodyWrapper"), container(".StandardArticleBody_body")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "Reuters article found but extraction failed.",
	},
	{
		name:          "bbc",
		domains:       []string{"bbc.com", "bbc.co.uk"},
		selectors:     []bodySelector{direct(`[data-component="text-block"]`), direct(".story-body__inner p"), direct(".gel-body-copy"), direct("article p")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "BBC article found but extraction failed.",
	},
	{
		name:          "nytimes",
		domains:       []string{"nytimes.com"},
		selectors:     []bodySelector{direct(".StoryBodyCompanionColumn p"), direct(`[name="articleBody"] p`), direct(`section[name="articleBody"] p`), direct("article p")},
		minChars:      30,
		minParagraphs: 1,
		markers:       []string{"Subscribe", "Times subscription"},
		placeholder:   "NY Times article found but may require subscription.",
	},
	{
		name:          "guardian",
		domains:       []string{"theguardian.com"},
		selectors:     []bodySelector{direct(`[data-gu-name="body"] p`), direct(".content__article-body p"), direct("#maincontent p"), direct("article p")},
		minChars:      30,
		minParagraphs: 1,
		placeholder:   "Guardian article found but extraction failed.",
	},
}

func strategyFor(domain string) *siteStrategy {
	domain = strings.ToLower(domain)
	for _, s := range siteStrategies {
		if s.matches(domain) {
			return s
		}
	}
	return nil
}

func wapoContentDivs(c *goquery.Selection) (string, bool) {
	var divs []string
	c.Find("div").Each(func(_ int, d *goquery.Selection) {
		t := nodeText(d)
		if charLen(t) > 50 && wordCount(t) > 10 && !containsAny(t, []string{"Subscribe", "Sign in"}) {
			divs = append(divs, t)
		}
	})
	if len(divs) == 0 {
		return "", false
	}
	return strings.Join(limit(divs, 3), "\n\n"), true
}

func wapoBodySentences(doc *goquery.Document) (string, bool) {
	text := doc.Find("body").Text()
	if charLen(text) <= 1000 {
		return "", false
	}
	var kept []string
	for _, s := range sentences(text, 50, 500) {
		if !containsAny(s, []string{"Subscribe", "Sign in", "Advertisement", "Cookie"}) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return joinSentences(limit(kept, 10)), true
}

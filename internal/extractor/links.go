package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/pkg/utils"
)

const (
	minTitleChars = 15
	maxTitleChars = 300

	// A selector with more matches than this is trusted to target article lists.
	confidentSelectorMatches = 5
	enoughLinks              = 10
	fallbackBelowLinks       = 5
	MaxLinksPerPass          = 30

	minArticleTitleWords = 4
)

var linkSelectors = []string{
	`article a[href]`,
	`.article a[href]`,
	`.story a[href]`,
	`.post a[href]`,
	`.news-item a[href]`,
	`.headline a[href]`,
	`.entry a[href]`,
	`.content-item a[href]`,
	`[data-testid="article"] a[href]`,
	`[data-testid="story"] a[href]`,
	`.wp-block-latest-posts a[href]`,
	`.post-title a[href]`,
	`h1 a[href], h2 a[href], h3 a[href]`,
	`.title a[href]`,
}

var skipWords = []string{
	"home", "about", "contact", "subscribe", "login", "menu", "search", "more",
	"sign in", "register", "newsletter", "follow us", "privacy policy", "terms of service",
}

var articlePathSegments = []string{
	"/article/", "/news/", "/story/", "/blog/", "/post/", "/opinion/", "/politics/",
	"/business/", "/world/", "/sports/", "/technology/", "/health/", "/entertainment/",
	"/breaking/", "/latest/", "/featured/", "/trending/",
}

const articleAncestors = "article, .article, .story, .post, .news-item, .content-item"

var articleParentClass = regexp.MustCompile(`(?i)(article|story|post|news|headline|title)`)

// NormalizeKeywords trims, lowercases and dedupes keywords. An empty result
// becomes the match-all set {""}.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// MatchesKeywords reports whether title satisfies the keyword set. An empty
// set, or one containing "", matches everything.
func MatchesKeywords(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(title)
	for _, k := range keywords {
		if k == "" || strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// ExtractLinks returns up to MaxLinksPerPass candidate article links found in
// doc, in document order. Relative hrefs resolve against base.
func ExtractLinks(doc *goquery.Document, base *url.URL, keywords []string) []entity.CandidateLink {
	c := &linkCollector{base: base, keywords: keywords, seen: make(map[string]struct{})}

	confident := false
	for _, sel := range linkSelectors {
		anchors := doc.Find(sel)
		if anchors.Length() <= confidentSelectorMatches {
			continue
		}
		confident = true
		anchors.Each(func(_ int, a *goquery.Selection) { c.consider(a) })
		if len(c.links) > enoughLinks {
			break
		}
	}

	if !confident || len(c.links) < fallbackBelowLinks {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) { c.consider(a) })
	}

	if len(c.links) > MaxLinksPerPass {
		return c.links[:MaxLinksPerPass]
	}
	return c.links
}

type linkCollector struct {
	base     *url.URL
	keywords []string
	seen     map[string]struct{}
	links    []entity.CandidateLink
}

func (c *linkCollector) consider(a *goquery.Selection) {
	title := collapseSpace(a.Text())
	href, _ := a.Attr("href")
	if title == "" || strings.TrimSpace(href) == "" {
		return
	}
	link, err := utils.ToAbsoluteURL(c.base, href)
	if err != nil || !utils.IsHTTP(link) {
		return
	}
	if _, dup := c.seen[link]; dup {
		return
	}
	if n := charLen(title); n < minTitleChars || n > maxTitleChars {
		return
	}
	if isNavigationTitle(title) {
		return
	}
	if !MatchesKeywords(title, c.keywords) {
		return
	}
	if !looksLikeArticle(a, link, title) {
		return
	}
	c.seen[link] = struct{}{}
	c.links = append(c.links, entity.CandidateLink{Title: title, URL: link})
}

func isNavigationTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, w := range skipWords {
		if lower == w || strings.HasPrefix(lower, w+" ") {
			return true
		}
	}
	return false
}

func looksLikeArticle(a *goquery.Selection, link, title string) bool {
	if containsAny(link, articlePathSegments) {
		return true
	}
	if a.Closest(articleAncestors).Length() > 0 {
		return true
	}
	if a.Find("h1, h2, h3, h4").Length() > 0 {
		return true
	}
	if wordCount(title) >= minArticleTitleWords {
		return true
	}
	class, _ := a.Parent().Attr("class")
	return articleParentClass.MatchString(class)
}

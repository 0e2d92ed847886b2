package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GeneralPlaceholder is returned when no strategy finds article text.
const GeneralPlaceholder = "Article content could not be extracted from this page."

const (
	// MinArticleChars is the content length above which a page counts as an
	// article. Every placeholder is shorter.
	MinArticleChars = 100

	generalStrategyName = "general"

	jsonLDBudget        = 5000
	dataAttrBudget      = 5000
	dataAttrMinChars    = 200
	textWalkBudget      = 3000
	textWalkMinChars    = 200
	textWalkNodeChars   = 100
	universalMinCount   = 3
	universalKeep       = 20
	scoredBlocksKept    = 3
	containerParagraphs = 2
)

// ArticleContent is the outcome of body extraction. Strategy names the
// extractor that produced Body.
type ArticleContent struct {
	Title    string
	Body     string
	Strategy string
}

// Extracted reports whether Body is long enough to be an article.
func (c ArticleContent) Extracted() bool {
	return charLen(c.Body) > MinArticleChars && !IsPlaceholder(c.Body)
}

var placeholders = func() map[string]struct{} {
	m := map[string]struct{}{GeneralPlaceholder: {}}
	for _, s := range siteStrategies {
		m[s.placeholder] = struct{}{}
	}
	return m
}()

// IsPlaceholder reports whether body is one of the fixed failure strings.
func IsPlaceholder(body string) bool {
	_, ok := placeholders[body]
	return ok
}

// ExtractArticle pulls the title and best-guess body text from doc. domain is
// the page host and selects a site-specific strategy when one exists.
func ExtractArticle(doc *goquery.Document, domain string) ArticleContent {
	out := ArticleContent{Title: ExtractTitle(doc)}
	if s := strategyFor(domain); s != nil {
		out.Strategy = s.name
		if body, ok := s.extract(doc); ok {
			out.Body = body
		} else {
			out.Body = s.placeholder
		}
		return out
	}

	out.Strategy = generalStrategyName
	out.Body = extractGeneral(doc)
	return out
}

var generalContainers = []string{
	"article .article-body",
	"article .story-body",
	".article-content",
	`[data-module="ArticleBody"]`,
	".entry-content",
	"article",
	".post-content",
	".content",
	"main .content",
	".story-content",
	".article-text",
	".body-content",
	".main-content",
	".content-body",
	".post-body",
	".entry-body",
	".single-content",
	".wp-content",
	".post-wrap",
	".article-wrap",
	".article-text-content",
	".article-body-text",
	".article-body-content",
	".story-body",
	".live-blog-body",
	`[data-testid="article-body"]`,
	`[data-testid="content"]`,
	`[role="article"]`,
	".prose",
	".rich-text",
	".editorial-content",
	".story-text",
	".article-container",
	".content-container",
}

var modernPatterns = []string{
	`[class*="article"][class*="content"]`,
	`[class*="story"][class*="body"]`,
	`[class*="post"][class*="content"]`,
	`[id*="article"]`,
	`[id*="story"]`,
	`[id*="content"]`,
}

var (
	relativeTime = regexp.MustCompile(`(?i)^\d+\s*(minute|min|hour|hr|day)\s*ago`)
	byline       = regexp.MustCompile(`^By\s+[A-Z]`)
	newsRegister = regexp.MustCompile(`(?i)\b(said|according|reported|sources|statement|interview|press|news|today|yesterday|breaking)\b`)

	universalPrefixes = []*regexp.Regexp{
		relativeTime,
		byline,
		regexp.MustCompile(`(?i)^Updated\s+`),
		regexp.MustCompile(`(?i)^Published\s+`),
		regexp.MustCompile(`(?i)^(Share|Tweet|Post|Like|Follow)`),
		regexp.MustCompile(`(?i)^(Next|Previous|Back to|More from)`),
	}
)

var (
	containerMarkers       = []string{"Subscribe", "Sign up", "Newsletter", "Follow us", "Advertisement", "Related:", "Read more:", "Share this", "Copyright"}
	containerFoldedMarkers = []string{"click here", "download", "app store"}
	universalFoldedMarkers = []string{
		"subscribe", "newsletter", "advertisement", "follow us", "sign in", "menu", "search", "home",
		"contact", "privacy policy", "terms of service", "cookie policy", "click here", "download our app",
	}
)

func extractGeneral(doc *goquery.Document) string {
	steps := []func(*goquery.Document) (string, bool){
		fromContainers,
		fromAllParagraphs,
		fromModernPatterns,
		fromScoredBlocks,
		fromJSONLD,
		fromDataAttributes,
		fromTextNodes,
	}
	for _, step := range steps {
		if body, ok := step(doc); ok {
			return body
		}
	}
	return GeneralPlaceholder
}

func fromContainers(doc *goquery.Document) (string, bool) {
	for _, sel := range generalContainers {
		c := doc.Find(sel).First()
		if c.Length() == 0 {
			continue
		}

		var paragraphs []string
		c.Find("p, .paragraph, [data-paragraph]").Each(func(_ int, p *goquery.Selection) {
			if t := nodeText(p); keepContainerParagraph(t) {
				paragraphs = append(paragraphs, t)
			}
		})
		if len(paragraphs) > containerParagraphs {
			return strings.Join(paragraphs, "\n\n"), true
		}
		if len(paragraphs) > 0 {
			continue
		}

		if body, ok := containerTextBlocks(c); ok {
			return body, true
		}
		if body, ok := containerSentences(c); ok {
			return body, true
		}
	}
	return "", false
}

func keepContainerParagraph(t string) bool {
	if charLen(t) <= 50 || containsAny(t, containerMarkers) {
		return false
	}
	if relativeTime.MatchString(t) || byline.MatchString(t) {
		return false
	}
	return !containsAny(strings.ToLower(t), containerFoldedMarkers)
}

func containerTextBlocks(c *goquery.Selection) (string, bool) {
	var blocks []string
	c.Find("div, span").Each(func(_ int, el *goquery.Selection) {
		t := nodeText(el)
		n := charLen(t)
		if n > 100 && n < 3000 && wordCount(t) > 20 && !containsAny(t, []string{"Subscribe", "Advertisement"}) {
			blocks = append(blocks, t)
		}
	})
	if len(blocks) == 0 {
		return "", false
	}
	return strings.Join(limit(blocks, 5), "\n\n"), true
}

func containerSentences(c *goquery.Selection) (string, bool) {
	text := nodeText(c)
	if charLen(text) <= 200 || wordCount(text) <= 30 {
		return "", false
	}
	var kept []string
	for _, s := range sentences(text, 50, 800) {
		if containsAny(s, []string{"Subscribe", "Advertisement", "Cookie", "Sign in"}) {
			continue
		}
		if strings.Contains(strings.ToLower(s), "newsletter") || relativeTime.MatchString(s) {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return "", false
	}
	return joinSentences(limit(kept, 15)), true
}

func fromAllParagraphs(doc *goquery.Document) (string, bool) {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		t := nodeText(p)
		n := charLen(t)
		if n <= 50 || n >= 2000 || wordCount(t) <= 8 {
			return
		}
		if containsAny(strings.ToLower(t), universalFoldedMarkers) || matchesAny(t, universalPrefixes) {
			return
		}
		paragraphs = append(paragraphs, t)
	})
	if len(paragraphs) < universalMinCount {
		return "", false
	}
	return strings.Join(limit(paragraphs, universalKeep), "\n\n"), true
}

func fromModernPatterns(doc *goquery.Document) (string, bool) {
	for _, sel := range modernPatterns {
		var body string
		doc.Find(sel).EachWithBreak(func(_ int, c *goquery.Selection) bool {
			text := nodeText(c)
			if charLen(text) <= 500 || wordCount(text) <= 50 {
				return true
			}
			var kept []string
			for _, s := range sentences(text, 40, 600) {
				lower := strings.ToLower(s)
				if !strings.Contains(lower, "subscribe") && !strings.Contains(lower, "advertisement") {
					kept = append(kept, s)
				}
			}
			kept = limit(kept, 12)
			if len(kept) > 3 {
				body = joinSentences(kept)
				return false
			}
			return true
		})
		if body != "" {
			return body, true
		}
	}
	return "", false
}

type scoredBlock struct {
	text  string
	score int
}

func fromScoredBlocks(doc *goquery.Document) (string, bool) {
	var blocks []scoredBlock
	doc.Find("div").Each(func(_ int, d *goquery.Selection) {
		text := nodeText(d)
		n, words := charLen(text), wordCount(text)
		if n <= 100 || n >= 5000 || words <= 20 || words >= 800 {
			return
		}
		lower := strings.ToLower(text)
		if containsAny(lower, []string{"subscribe", "advertisement", "cookie"}) {
			return
		}
		if d.Find("nav, header, footer, aside").Length() > 0 {
			return
		}
		score := words + 10*d.Find("p").Length()
		if newsRegister.MatchString(text) {
			score += 50
		}
		blocks = append(blocks, scoredBlock{text: text, score: score})
	})
	if len(blocks) == 0 {
		return "", false
	}

	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].score > blocks[j].score })
	if len(blocks) > scoredBlocksKept {
		blocks = blocks[:scoredBlocksKept]
	}
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.text
	}
	return strings.Join(texts, "\n\n"), true
}

func fromDataAttributes(doc *goquery.Document) (string, bool) {
	var body string
	doc.Find("[data-content], [data-article], [data-text], [data-body]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		content := ""
		for _, attr := range []string{"data-content", "data-article", "data-text", "data-body"} {
			if v, ok := el.Attr(attr); ok && strings.TrimSpace(v) != "" {
				content = v
				break
			}
		}
		if content == "" {
			content = el.Text()
		}
		content = strings.TrimSpace(content)
		if charLen(content) > dataAttrMinChars {
			body = truncate(content, dataAttrBudget)
			return false
		}
		return true
	})
	return body, body != ""
}

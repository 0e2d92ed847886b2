package extractor

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	articleTypes = map[string]bool{"Article": true, "NewsArticle": true, "ReportageNewsArticle": true}
	stripTags    = bluemonday.StrictPolicy()
)

func fromJSONLD(doc *goquery.Document) (string, bool) {
	var body string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if raw := findArticleBody(data); raw != "" {
			text := strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(raw)))
			if text != "" {
				body = truncate(text, jsonLDBudget)
				return false
			}
		}
		return true
	})
	return body, body != ""
}

// findArticleBody walks arbitrarily nested JSON-LD (arrays and @graph) for
// the first article node carrying an articleBody.
func findArticleBody(v any) string {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			if body := findArticleBody(item); body != "" {
				return body
			}
		}
	case map[string]any:
		if isArticleType(node["@type"]) {
			if body, ok := node["articleBody"].(string); ok && body != "" {
				return body
			}
		}
		if graph, ok := node["@graph"]; ok {
			return findArticleBody(graph)
		}
	}
	return ""
}

func isArticleType(t any) bool {
	switch tt := t.(type) {
	case string:
		return articleTypes[tt]
	case []any:
		for _, x := range tt {
			if s, ok := x.(string); ok && articleTypes[s] {
				return true
			}
		}
	}
	return false
}

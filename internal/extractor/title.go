package extractor

import "github.com/PuerkitoBio/goquery"

const fallbackTitle = "News Article"

// ExtractTitle returns the first h1, then the document title, then a fixed fallback.
func ExtractTitle(doc *goquery.Document) string {
	if t := collapseSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := collapseSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return fallbackTitle
}

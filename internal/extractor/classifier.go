package extractor

import "github.com/PuerkitoBio/goquery"

const articleMarkers = `article, .article-body, .story-body, .post-content, .entry-content, [role="article"], .content-body, .main-content`

// IsArticlePage reports whether doc carries any of the common article
// container markers.
func IsArticlePage(doc *goquery.Document) bool {
	return doc.Find(articleMarkers).Length() > 0
}

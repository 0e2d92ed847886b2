package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var skippedSubtrees = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"nav": true, "header": true, "footer": true, "aside": true,
}

func fromTextNodes(doc *goquery.Document) (string, bool) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return "", false
	}

	var chunks []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if skippedSubtrees[n.Data] {
				return
			}
		case html.TextNode:
			t := strings.TrimSpace(n.Data)
			lower := strings.ToLower(t)
			if charLen(t) > textWalkNodeChars && !strings.Contains(lower, "script") && !strings.Contains(lower, "style") {
				chunks = append(chunks, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body.Nodes[0])

	if len(chunks) == 0 {
		return "", false
	}
	combined := truncate(strings.Join(chunks, " "), textWalkBudget)
	if charLen(combined) <= textWalkMinChars {
		return "", false
	}
	return combined, true
}

// Package report assembles scraped articles into a plain-text report body
// together with the ranges a publisher should style.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/user/newsscrape-service/internal/entity"
)

const (
	dateLayout = "Monday, January 2, 2006"
	timeLayout = "03:04:05 PM"
	urlLabel   = "URL: "
)

var separator = strings.Repeat("=", 72) + "\n\n"

// Title returns the document title for a report compiled at now.
func Title(now time.Time) string {
	return fmt.Sprintf("News Scrape Report - %s • %s", now.Format(dateLayout), now.Format(timeLayout))
}

// Compile groups articles by source, in order of first appearance, and builds
// the report text. Offsets in the returned ranges start at 1 and count UTF-16
// code units, the way document APIs index text.
func Compile(articles []entity.Article, now time.Time) *entity.ReportRequest {
	b := &builder{offset: 1}
	b.write(fmt.Sprintf("News Scraper Report\nDate: %s %s\n\n", now.Format(dateLayout), now.Format(timeLayout)))
	b.write(fmt.Sprintf("Total Articles: %d\n\n", len(articles)))

	for _, group := range groupBySource(articles) {
		b.write(fmt.Sprintf("--- %s (%d) ---\n\n", group.source, len(group.articles)))

		for i, a := range group.articles {
			titleLine := fmt.Sprintf("%d. %s\n", i+1, sanitizeBlock(a.Title))
			start := b.offset
			b.write(titleLine)
			b.bold = append(b.bold, entity.TextRange{Start: start, End: b.offset})

			b.write(urlLabel)
			start = b.offset
			b.write(a.URL)
			b.links = append(b.links, entity.TextRange{Start: start, End: b.offset, URL: a.URL})
			b.write("\n\n")

			b.write("Content:\n" + sanitizeBlock(a.Content) + "\n\n")
			b.write(separator)
		}
	}

	return &entity.ReportRequest{
		Title:    Title(now),
		Text:     b.text.String(),
		Bold:     b.bold,
		Links:    b.links,
		Articles: articles,
	}
}

type builder struct {
	text   strings.Builder
	offset int
	bold   []entity.TextRange
	links  []entity.TextRange
}

func (b *builder) write(s string) {
	b.text.WriteString(s)
	b.offset += UTF16Len(s)
}

// UTF16Len is the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

type sourceGroup struct {
	source   string
	articles []entity.Article
}

func groupBySource(articles []entity.Article) []sourceGroup {
	index := make(map[string]int)
	var groups []sourceGroup
	for _, a := range articles {
		i, ok := index[a.Source]
		if !ok {
			i = len(groups)
			index[a.Source] = i
			groups = append(groups, sourceGroup{source: a.Source})
		}
		groups[i].articles = append(groups[i].articles, a)
	}
	return groups
}
